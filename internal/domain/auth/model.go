package auth

// User es la fila de credenciales tal como vive en la base. El hash jamás
// sale de este paquete hacia una respuesta.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Rol          string
}

// Identity es la proyección mínima que devuelve el login: nunca password.
type Identity struct {
	ID       int64  `json:"id_usuario"`
	Username string `json:"username"`
	Rol      string `json:"rol"`
}
