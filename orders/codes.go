package orders

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"restaurant-api/models"
)

// MintCode produces a short human-readable claim token.
func MintCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// bindCode attaches a claim code to a freshly created order inside the
// creation transaction. A supplied code is a pre-printed ticket and must be
// consumed exactly once; with no code supplied a fresh one is minted and
// recorded as already consumed. Either way the order's order_code column is
// written only through this path.
func (s *Service) bindCode(tx *gorm.DB, order *models.Order, requested string) error {
	if requested == "" {
		code := models.OrderCode{
			Code:        MintCode(),
			TableNumber: order.TableNumber,
			IsUsed:      true,
			OrderID:     &order.ID,
		}
		if err := tx.Create(&code).Error; err != nil {
			return err
		}
		order.OrderCode = code.Code
		return tx.Model(order).Update("order_code", code.Code).Error
	}

	// Consume the pre-printed ticket: conditional update on is_used so two
	// orders can never bind the same code.
	res := tx.Model(&models.OrderCode{}).
		Where("code = ? AND is_used = ?", requested, false).
		Updates(map[string]interface{}{"is_used": true, "order_id": order.ID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var code models.OrderCode
		if err := tx.Where("code = ?", requested).First(&code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("order code %q", requested)
			}
			return err
		}
		return conflictf("order code %q already used", requested)
	}

	var code models.OrderCode
	if err := tx.Where("code = ?", requested).First(&code).Error; err != nil {
		return err
	}
	updates := map[string]interface{}{"order_code": code.Code}
	// A ticket pre-printed for a table supplies the table number when the
	// order does not name one itself.
	if order.TableNumber == nil && code.TableNumber != nil {
		updates["table_number"] = *code.TableNumber
		order.TableNumber = code.TableNumber
	}
	order.OrderCode = code.Code
	return tx.Model(order).Updates(updates).Error
}

// CreateCode mints a pre-printed ticket code ahead of any order, optionally
// bound to a table.
func (s *Service) CreateCode(waiterID uint, tableNumber *int) (*models.OrderCode, error) {
	code := models.OrderCode{
		Code:        MintCode(),
		TableNumber: tableNumber,
		WaiterID:    &waiterID,
	}
	if err := s.db.Create(&code).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

// VerifyCode reports whether a code exists and is still claimable.
func (s *Service) VerifyCode(code string) (*models.OrderCode, error) {
	var oc models.OrderCode
	if err := s.db.Where("code = ?", code).First(&oc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("order code %q", code)
		}
		return nil, err
	}
	if oc.IsUsed {
		return nil, conflictf("order code %q already used", code)
	}
	return &oc, nil
}

// ListCodes returns the codes a waiter has printed, newest first.
func (s *Service) ListCodes(waiterID uint) ([]models.OrderCode, error) {
	var codes []models.OrderCode
	if err := s.db.Where("waiter_id = ?", waiterID).
		Order("created_at desc").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// DeleteCode removes an unused ticket code. A consumed code is part of an
// order's history and cannot be deleted.
func (s *Service) DeleteCode(code string) error {
	res := s.db.Where("code = ? AND is_used = ?", code, false).Delete(&models.OrderCode{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var oc models.OrderCode
		if err := s.db.Where("code = ?", code).First(&oc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("order code %q", code)
			}
			return err
		}
		return conflictf("order code %q already used, cannot delete", code)
	}
	return nil
}
