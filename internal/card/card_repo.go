package card

import (
	"errors"

	"gorm.io/gorm"
)

// PurchaseRepository defines the data operations of the purchase ledger.
type PurchaseRepository interface {
	Create(purchase *PokemonPurchase) error
	FindByUserAndName(userID uint, pokemonName string) (*PokemonPurchase, error)
	FindByIDs(ids []uint) ([]PokemonPurchase, error)
	ListByUser(userID uint, page, limit int) ([]PokemonPurchase, int64, error)
}

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new instance of PurchaseRepository.
func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(purchase *PokemonPurchase) error {
	return r.db.Create(purchase).Error
}

func (r *purchaseRepository) FindByUserAndName(userID uint, pokemonName string) (*PokemonPurchase, error) {
	var purchase PokemonPurchase
	err := r.db.Where("user_id = ? AND pokemon_name = ?", userID, pokemonName).First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) FindByIDs(ids []uint) ([]PokemonPurchase, error) {
	var purchases []PokemonPurchase
	if err := r.db.Where("id IN ?", ids).Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *purchaseRepository) ListByUser(userID uint, page, limit int) ([]PokemonPurchase, int64, error) {
	var purchases []PokemonPurchase
	var total int64

	query := r.db.Model(&PokemonPurchase{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&purchases).Error; err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}
