package confirm

import (
	"errors"
	"net/http"
	"strings"
)

// Choice es la respuesta del prompt de dos opciones que precede a todo borrado.
type Choice string

const (
	Cancel Choice = "cancel"
	Delete Choice = "delete"
)

var ErrRequired = errors.New("confirmation required")

// Labels son los textos del prompt, en orden: la opción segura primero, la destructiva después.
var Labels = []string{"Cancel", "Delete"}

func Parse(s string) Choice {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Delete):
		return Delete
	default:
		return Cancel
	}
}

// Require devuelve ErrRequired salvo que el usuario haya elegido Delete.
func Require(c Choice) error {
	if c != Delete {
		return ErrRequired
	}
	return nil
}

// FromRequest lee ?confirm=delete o el header X-Confirm.
func FromRequest(r *http.Request) Choice {
	if v := r.URL.Query().Get("confirm"); v != "" {
		return Parse(v)
	}
	return Parse(r.Header.Get("X-Confirm"))
}

// WriteRequired responde 428 con las opciones del prompt para que el cliente lo muestre.
func WriteRequired(w http.ResponseWriter) {
	w.Header().Set("X-Confirm-Choices", strings.Join(Labels, ","))
	http.Error(w, "confirmation required: send confirm=delete", http.StatusPreconditionRequired)
}
