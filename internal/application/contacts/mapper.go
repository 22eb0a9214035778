package contacts

import (
	"github.com/jhoicas/dealflow-api/internal/application/dto"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
)

func toContactResponse(c *entity.TrackedContact) *dto.ContactResponse {
	return &dto.ContactResponse{
		ID:               c.ID,
		AdvisorID:        c.AdvisorID,
		Kind:             c.Kind,
		Name:             c.Name,
		Email:            c.Email,
		Company:          c.Company,
		Phone:            c.Phone,
		IsOnPlatform:     c.IsOnPlatform,
		PlatformEntityID: c.PlatformEntityID,
		InviteStatus:     string(c.InviteStatus),
		InvitedAt:        c.InvitedAt,
		CreatedAt:        c.CreatedAt,
	}
}
