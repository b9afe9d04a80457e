package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"yatube/internal/core/apperr"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofrs/uuid"
)

// uploadDir is the sub-directory of the media root post images go to.
const uploadDir = "posts"

// ImageStore saves post attachments under Root and hands back the path
// relative to it, e.g. "posts/<uuid>.gif".
type ImageStore struct {
	Root string
}

func NewImageStore(root string) *ImageStore {
	return &ImageStore{Root: root}
}

// Save sniffs the upload and refuses anything that is not an image.
func (s *ImageStore) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	return s.SaveReader(src)
}

// SaveReader is Save for an already opened stream.
func (s *ImageStore) SaveReader(src io.ReadSeeker) (string, error) {
	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("detect image type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: attachment is %s, not an image", apperr.ErrInvalidRequest, mtype.String())
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	dir := filepath.Join(s.Root, uploadDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.Must(uuid.NewV4()).String() + mtype.Extension()
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path.Join(uploadDir, name), nil
}
