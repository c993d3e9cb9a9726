package entity

// User usuario del backend. Password solo se envía en altas/actualizaciones.
type User struct {
	ID                    int64              `json:"id,omitempty"`
	FirstName             string             `json:"firstName"`
	LastName              string             `json:"lastName"`
	Username              string             `json:"username"`
	Password              string             `json:"password,omitempty"`
	Email                 string             `json:"email"`
	OTP                   string             `json:"otp,omitempty"`
	LastLogin             *Timestamp         `json:"lastLogin,omitempty"`
	Roles                 []string           `json:"roles,omitempty"`
	AccountNonExpired     *bool              `json:"accountNonExpired,omitempty"`
	AccountNonLocked      *bool              `json:"accountNonLocked,omitempty"`
	CredentialsNonExpired *bool              `json:"credentialsNonExpired,omitempty"`
	Enabled               *bool              `json:"enabled,omitempty"`
	Authorities           []GrantedAuthority `json:"authorities,omitempty"`
}

// FullName nombre para mostrar.
func (u User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}

// GrantedAuthority permiso de Spring Security serializado por el backend.
type GrantedAuthority struct {
	Authority string `json:"authority"`
}

// UserDetails vista reducida del usuario (GET /users/{username}).
type UserDetails struct {
	Username              string             `json:"username"`
	Authorities           []GrantedAuthority `json:"authorities,omitempty"`
	AccountNonExpired     *bool              `json:"accountNonExpired,omitempty"`
	AccountNonLocked      *bool              `json:"accountNonLocked,omitempty"`
	CredentialsNonExpired *bool              `json:"credentialsNonExpired,omitempty"`
	Password              string             `json:"password,omitempty"`
	Enabled               *bool              `json:"enabled,omitempty"`
}

// UserLoginDto credenciales de login.
type UserLoginDto struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserRegistrationDto alta de usuario.
type UserRegistrationDto struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginResponse respuesta de /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// TokenValidation respuesta de /auth/validate-token.
type TokenValidation struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
}
