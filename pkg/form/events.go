package form

// Lifecycle event types published by a Form. Handlers receive the form
// itself as payload unless the publisher attached one explicitly.
const (
	EventInit                = "form:init"
	EventMount               = "form:mount"
	EventUnmount             = "form:unmount"
	EventValuesChange        = "form:values-change"
	EventInitialValuesChange = "form:initial-values-change"
	EventGraphChange         = "form:graph-change"

	EventSubmitStart           = "form:submit-start"
	EventSubmitEnd             = "form:submit-end"
	EventSubmitValidateStart   = "form:submit-validate-start"
	EventSubmitValidateSuccess = "form:submit-validate-success"
	EventSubmitValidateFailed  = "form:submit-validate-failed"
	EventSubmitValidateEnd     = "form:submit-validate-end"
	EventSubmitSuccess         = "form:submit-success"
	EventSubmitFailed          = "form:submit-failed"
	EventSubmit                = "form:submit"

	EventValidateStart   = "form:validate-start"
	EventValidateEnd     = "form:validate-end"
	EventValidateFailed  = "form:validate-failed"
	EventValidateSuccess = "form:validate-success"

	EventReset = "form:reset"
)
