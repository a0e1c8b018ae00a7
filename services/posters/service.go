package posters

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

var (
	ErrDirRequired = errors.New("poster directory not provided")
	ErrEmptyPoster = errors.New("poster data is empty")
	ErrNotAnImage  = errors.New("poster must be an image")
)

// Service stores poster blobs for films. The backing filesystem is
// abstracted so production uses the OS filesystem while tests run against
// an in-memory one.
type Service struct {
	fs  afero.Fs
	dir string
}

// NewService creates a poster service rooted at dir on the given filesystem.
func NewService(fs afero.Fs, dir string) (*Service, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, ErrDirRequired
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create poster dir: %w", err)
	}
	return &Service{fs: fs, dir: dir}, nil
}

// Save stores poster bytes for a film and returns the stored filename. The
// extension comes from content sniffing, not from the upload's claimed
// type. A previously stored poster for the film is replaced even when its
// extension differs.
func (s *Service) Save(filmID string, data []byte) (string, error) {
	filmID = filepath.Base(strings.TrimSpace(filmID))
	if filmID == "" || filmID == "." {
		return "", errors.New("film id is required")
	}
	if len(data) == 0 {
		return "", ErrEmptyPoster
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w, detected %s", ErrNotAnImage, mt.String())
	}

	if err := s.removeExisting(filmID); err != nil {
		return "", err
	}

	name := filmID + mt.Extension()
	if err := afero.WriteFile(s.fs, filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write poster: %w", err)
	}
	return name, nil
}

// Remove deletes any stored poster for the film. Missing posters are not an
// error.
func (s *Service) Remove(filmID string) error {
	return s.removeExisting(filepath.Base(strings.TrimSpace(filmID)))
}

func (s *Service) removeExisting(filmID string) error {
	matches, err := afero.Glob(s.fs, filepath.Join(s.dir, filmID+".*"))
	if err != nil {
		return fmt.Errorf("find existing poster: %w", err)
	}
	for _, m := range matches {
		if err := s.fs.Remove(m); err != nil {
			return fmt.Errorf("remove existing poster: %w", err)
		}
	}
	return nil
}

// HTTPFileSystem exposes the poster directory for serving.
func (s *Service) HTTPFileSystem() http.FileSystem {
	return afero.NewHttpFs(afero.NewBasePathFs(s.fs, s.dir))
}
