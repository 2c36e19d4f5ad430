package store

import (
	"context"
	"net/url"

	"house-portal/models"
)

// HouseAPI defines the house service boundary consumed by the HouseStore.
// Production uses api.HouseClient.
type HouseAPI interface {
	ListHouses(ctx context.Context, params url.Values) ([]models.House, error)
	GetHouse(ctx context.Context, id string) (*models.House, error)
	GetHouseByZillowID(ctx context.Context, zillowID string) (*models.House, error)
	SearchByLocation(ctx context.Context, q models.LocationSearch) ([]models.LocationResult, error)
}

// UserAPI defines the user service boundary consumed by the UserStore.
// Production uses api.UserClient.
type UserAPI interface {
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	UpdateUser(ctx context.Context, token string, id int64, patch models.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, token string, id int64, newPassword string) error
}

// SessionPersistence stores the serialized session blob under a single
// key. Load returns (nil, nil) when nothing is stored.
type SessionPersistence interface {
	Save(data []byte) error
	Load() ([]byte, error)
	Clear() error
}
