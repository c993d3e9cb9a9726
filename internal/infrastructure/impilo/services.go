package impilo

// Services agrupa todos los servicios sobre un mismo cliente.
type Services struct {
	Client    *Client
	Auth      *AuthService
	Users     *UserService
	Locations *LocationService
	Stock     *StockService
}

// NewServices construye los servicios. store nil usa un token en memoria.
func NewServices(client *Client, store TokenStore) *Services {
	return &Services{
		Client:    client,
		Auth:      NewAuthService(client, store),
		Users:     NewUserService(client),
		Locations: NewLocationService(client),
		Stock:     NewStockService(client),
	}
}
