package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gopherblog/internal/model"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts the account. A unique-index violation on username surfaces
// as gorm.ErrDuplicatedKey inside the wrapped error; the failed insert is
// rolled back by the driver.
func (r *AccountRepository) Create(account *model.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("create account failed: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByUsername(username string) (*model.Account, error) {
	var account model.Account
	if err := r.db.Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query account by username failed: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) GetByID(id uint) (*model.Account, error) {
	var account model.Account
	if err := r.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query account by id failed: %w", err)
	}
	return &account, nil
}
