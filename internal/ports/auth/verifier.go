package auth

import "context"

// AuthVerifier verifica un token del proveedor hospedado y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
