package response

import (
	"tasktracker/internal/core/domain/user"

	"github.com/golang-module/carbon/v2"
)

type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Name = du.Name
	u.Email = string(du.Email)
	u.Role = du.Role.String()
	u.Status = du.Status.String()
	u.CreatedAt = carbon.CreateFromStdTime(du.CreatedAt).ToDateTimeString()
	u.UpdatedAt = carbon.CreateFromStdTime(du.UpdatedAt).ToDateTimeString()
}
