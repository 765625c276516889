package response

// Envelope is the JSON body shape every endpoint returns:
// {"success":true,"data":...} or {"success":false,"error":{...}}.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(data any) Envelope {
	return Envelope{
		Success: true,
		Data:    data,
	}
}

func Error(code, message string, details any) Envelope {
	return Envelope{
		Success: false,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
