package catalog

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/taibuivan/alloyforge/internal/platform/constants"
)

// rgbFunc converts 0..255 channel values into the [0,1] color components the
// catalog stores: rgb(153, 153, 153) == [0.6, 0.6, 0.6].
var rgbFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "r", Type: cty.Number},
		{Name: "g", Type: cty.Number},
		{Name: "b", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.List(cty.Number)),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		out := make([]cty.Value, len(args))
		for i, arg := range args {
			channel, _ := arg.AsBigFloat().Float64()
			if channel < 0 || channel > 255 {
				return cty.NilVal, function.NewArgErrorf(i, "channel must be within 0..255, got %g", channel)
			}
			out[i] = cty.NumberFloatVal(channel / 255)
		}
		return cty.ListVal(out), nil
	},
})

// evalContext exposes the helpers available to catalog expressions.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"category": cty.ObjectVal(map[string]cty.Value{
				"metallic":      cty.StringVal(constants.CategoryMetallic),
				"resources_raw": cty.StringVal(constants.CategoryResourcesRaw),
			}),
		},
		Functions: map[string]function.Function{
			"rgb":    rgbFunc,
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"concat": stdlib.ConcatFunc,
			"format": stdlib.FormatFunc,
		},
	}
}
