package payload

import (
	"encoding/json"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"go.trai.ch/cadence/internal/core/domain"
	"go.trai.ch/zerr"
)

// hclFile is the root of an HCL task file:
//
//	task "Design API" {
//	  estimatedHours = 5
//	  dueDate        = "2025-10-25"
//	  dependencies   = []
//	}
type hclFile struct {
	Tasks []hclTask `hcl:"task,block"`
}

type hclTask struct {
	Title string         `hcl:"title,label"`
	Attrs hcl.Attributes `hcl:",remain"`
}

// fromHCL converts HCL task blocks into a JSON payload.
// Attribute values are passed through untyped so that the validator reports
// type errors the same way for every format.
func fromHCL(name string, data []byte) ([]byte, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, name)
	if diags.HasErrors() {
		return nil, zerr.Wrap(diags, domain.ErrPayloadParseFailed.Error())
	}

	var doc hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, zerr.Wrap(diags, domain.ErrPayloadParseFailed.Error())
	}

	tasks := make([]map[string]json.RawMessage, 0, len(doc.Tasks))
	for _, t := range doc.Tasks {
		task, err := hclTaskJSON(t)
		if err != nil {
			return nil, zerr.With(err, "task", t.Title)
		}
		tasks = append(tasks, task)
	}

	out, err := json.Marshal(map[string]any{"tasks": tasks})
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrPayloadParseFailed.Error())
	}
	return out, nil
}

func hclTaskJSON(t hclTask) (map[string]json.RawMessage, error) {
	title, err := json.Marshal(t.Title)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrPayloadParseFailed.Error())
	}
	task := map[string]json.RawMessage{"title": title}

	for key, attr := range t.Attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, zerr.Wrap(diags, domain.ErrPayloadParseFailed.Error())
		}
		raw, err := ctyjson.SimpleJSONValue{Value: val}.MarshalJSON()
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrPayloadParseFailed.Error()), "attribute", key)
		}
		task[key] = raw
	}
	return task, nil
}
