package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

type validationError struct {
	ActualTag string `json:"tag"`
	Namespace string `json:"namespace"`
	Kind      string `json:"kind"`
	Type      string `json:"type"`
	Value     string `json:"value"`
	Param     string `json:"param"`
}

// HandleValidationErrors renders validator field errors as a 422 payload;
// any other read error becomes a generic 400.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]validationError, 0, len(errs))
		for _, e := range errs {
			fields = append(fields, validationError{
				ActualTag: e.ActualTag(),
				Namespace: e.Namespace(),
				Kind:      e.Kind().String(),
				Type:      e.Type().String(),
				Value:     fieldValue(e),
				Param:     e.Param(),
			})
		}
		ctx.StatusCode(iris.StatusUnprocessableEntity)
		ctx.JSON(iris.Map{"error": "validation_failed", "fields": fields})
		return
	}
	JSONError(ctx, iris.StatusBadRequest, "bad_request", err.Error())
}

func fieldValue(e validator.FieldError) string {
	if s, ok := e.Value().(string); ok {
		return s
	}
	return ""
}
