package auth

// Claims es lo que el proveedor de identidad devuelve al verificar un token.
// Email y Name alimentan el perfil que se crea la primera vez que el usuario llama a /me.
type Claims struct {
	UserID string
	Email  string
	Name   string
}
