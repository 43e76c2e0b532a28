package response

import (
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/domain"
)

type Auth struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
