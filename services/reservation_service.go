package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dinehub/restaurant-backend/models"
	"github.com/dinehub/restaurant-backend/utils"
)

type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

type ReservationRequest struct {
	CustomerName   string `json:"customer_name" binding:"required"`
	PhoneNumber    string `json:"phone_number" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	NumberOfGuests int    `json:"number_of_guests" binding:"required"`
	TableID        *uint  `json:"table_id"`
	Notes          string `json:"notes"`
}

// lockForUpdate takes a row lock on the selected tables so two concurrent
// bookings cannot both pass the availability check. SQLite serializes
// writers on its own and rejects FOR UPDATE, so the clause is MySQL-only.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Create books a table for the requested slot. With an explicit table the
// table must exist, be available, seat the party and have no active
// reservation at that date/time. Without one, the smallest available table
// that fits the party and is free at that slot is assigned (ties break on
// the lower table ID). The reservation is stored with status pending.
func (s *ReservationService) Create(req ReservationRequest) (*models.Reservation, error) {
	if req.CustomerName == "" || req.PhoneNumber == "" || req.Date == "" || req.Time == "" {
		return nil, fmt.Errorf("%w: customer_name, phone_number, date and time are required", utils.ErrInvalidArgument)
	}
	if req.NumberOfGuests <= 0 {
		return nil, fmt.Errorf("%w: number_of_guests must be positive", utils.ErrInvalidArgument)
	}

	var res *models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var tableID *uint

		if req.TableID != nil {
			var table models.Table
			if err := lockForUpdate(tx).First(&table, *req.TableID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: table %d", utils.ErrNotFound, *req.TableID)
				}
				return err
			}
			if !table.IsAvailable {
				return fmt.Errorf("%w: table %d is not available", utils.ErrConflict, table.TableNumber)
			}
			if table.Capacity < req.NumberOfGuests {
				return fmt.Errorf("%w: table %d seats %d, party of %d requested", utils.ErrConflict, table.TableNumber, table.Capacity, req.NumberOfGuests)
			}
			booked, err := hasActiveReservation(tx, table.ID, req.Date, req.Time)
			if err != nil {
				return err
			}
			if booked {
				return fmt.Errorf("%w: table %d is already reserved for %s %s", utils.ErrConflict, table.TableNumber, req.Date, req.Time)
			}
			tableID = &table.ID
		} else {
			// Smallest sufficient table first, then lowest ID, so equal
			// capacities resolve deterministically.
			var tables []models.Table
			if err := lockForUpdate(tx).
				Where("is_available = ? AND capacity >= ?", true, req.NumberOfGuests).
				Order("capacity asc, id asc").
				Find(&tables).Error; err != nil {
				return err
			}
			for i := range tables {
				booked, err := hasActiveReservation(tx, tables[i].ID, req.Date, req.Time)
				if err != nil {
					return err
				}
				if !booked {
					tableID = &tables[i].ID
					break
				}
			}
			if tableID == nil {
				return fmt.Errorf("%w: no table for %d guests is free at %s %s", utils.ErrConflict, req.NumberOfGuests, req.Date, req.Time)
			}
		}

		res = &models.Reservation{
			CustomerName:   req.CustomerName,
			PhoneNumber:    req.PhoneNumber,
			TableID:        tableID,
			Date:           req.Date,
			Time:           req.Time,
			NumberOfGuests: req.NumberOfGuests,
			Status:         models.ReservationPending,
			Notes:          req.Notes,
		}
		return tx.Create(res).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("reservation %d created for %s (%s %s)", res.ID, res.CustomerName, res.Date, res.Time)
	return res, nil
}

// SetStatus moves a reservation along the transition graph and keeps the
// attached table's availability in sync: confirming takes the table,
// cancelling or completing releases it. Both writes share one transaction
// with the table row locked.
func (s *ReservationService) SetStatus(id uint, next models.ReservationStatus) (*models.Reservation, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown reservation status %q", utils.ErrInvalidArgument, next)
	}

	var res models.Reservation
	if err := s.DB.First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: reservation %d", utils.ErrNotFound, id)
		}
		return nil, err
	}

	if !res.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: reservation cannot go from %q to %q", utils.ErrInvalidArgument, res.Status, next)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if res.TableID != nil {
			if err := s.syncTableAvailability(tx, *res.TableID, next); err != nil {
				return err
			}
		}
		res.Status = next
		return tx.Omit(clause.Associations).Save(&res).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("reservation %d is now %s", res.ID, res.Status)
	return &res, nil
}

// Delete removes a reservation. A confirmed reservation holds its table,
// so deleting one releases the table; a pending reservation never marked
// the table unavailable and leaves it untouched.
func (s *ReservationService) Delete(id uint) error {
	var res models.Reservation
	if err := s.DB.First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: reservation %d", utils.ErrNotFound, id)
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if res.TableID != nil && res.Status == models.ReservationConfirmed {
			if err := s.syncTableAvailability(tx, *res.TableID, models.ReservationCancelled); err != nil {
				return err
			}
		}
		return tx.Delete(&models.Reservation{}, id).Error
	})
}

// syncTableAvailability flips the table flag for the given target status.
// A table deleted out from under the reservation is ignored: references
// are non-owning and carry no integrity guarantee.
func (s *ReservationService) syncTableAvailability(tx *gorm.DB, tableID uint, next models.ReservationStatus) error {
	var table models.Table
	if err := lockForUpdate(tx).First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.InfoLogger.Warnf("reservation references missing table %d, skipping availability sync", tableID)
			return nil
		}
		return err
	}

	switch next {
	case models.ReservationConfirmed:
		table.IsAvailable = false
	case models.ReservationCancelled, models.ReservationCompleted:
		table.IsAvailable = true
	default:
		return nil
	}
	return tx.Save(&table).Error
}

func hasActiveReservation(tx *gorm.DB, tableID uint, date, timeSlot string) (bool, error) {
	var count int64
	err := tx.Model(&models.Reservation{}).
		Where("table_id = ? AND date = ? AND time = ? AND status IN ?",
			tableID, date, timeSlot,
			[]models.ReservationStatus{models.ReservationPending, models.ReservationConfirmed}).
		Count(&count).Error
	return count > 0, err
}
