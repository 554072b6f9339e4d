package ports

import (
	"context"
	"io"

	"github.com/cholospace/mission-control/internal/core/domain"
)

// AvatarUpload carries a single uploaded avatar file.
type AvatarUpload struct {
	Target   string // identity whose avatar is replaced
	Filename string
	Size     int64
	Content  io.Reader
}

type AvatarService interface {
	Upload(ctx context.Context, actor domain.Actor, in AvatarUpload) (ref string, err error)
}
