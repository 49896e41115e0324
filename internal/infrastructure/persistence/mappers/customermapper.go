package mappers

import (
	"time"

	"github.com/licensehub/licensehub/internal/domain/customer"
	"github.com/licensehub/licensehub/internal/infrastructure/persistence/models"
)

func CustomerToEntity(model *models.CustomerModel) *customer.Customer {
	if model == nil {
		return nil
	}
	var deletedAt *time.Time
	if model.DeletedAt.Valid {
		t := model.DeletedAt.Time
		deletedAt = &t
	}
	return customer.ReconstructCustomer(model.ID, model.UserID, model.Name, model.Phone, deletedAt)
}
