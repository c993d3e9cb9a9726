package impilo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore persistencia del token de sesión entre ejecuciones.
type TokenStore interface {
	// Load devuelve "" sin error cuando no hay token guardado.
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore guarda el token en un archivo con permisos 0600.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore construye el store. Si path está vacío usa
// $XDG_CONFIG_HOME/impilo/token (o el equivalente del SO).
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("token store: directorio de configuración: %w", err)
		}
		path = filepath.Join(dir, "impilo", "token")
	}
	return &FileTokenStore{path: path}, nil
}

// Path ruta del archivo.
func (s *FileTokenStore) Path() string { return s.path }

func (s *FileTokenStore) Load() (string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("token store: leer: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("token store: crear directorio: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("token store: escribir: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("token store: borrar: %w", err)
	}
	return nil
}

// MemoryTokenStore store en memoria (tests y servidor).
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryTokenStore) Clear() error { return s.Save("") }
