package database

import (
	"errors"
	"time"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrManagerNotInitialized = errors.New("data manager not initialized")
	ErrBuyerNotFound         = errors.New("premium buyer not found")
)

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func getPremiumBuyerManager() (*DataManager[models.PremiumBuyer], error) {
	if GlobalPremiumBuyerDM == nil {
		return nil, ErrManagerNotInitialized
	}
	return GlobalPremiumBuyerDM, nil
}

// GetPremiumBuyer returns the premium record for a user, or nil when the
// user has never been granted premium.
func GetPremiumBuyer(userID string) (*models.PremiumBuyer, error) {
	dm, err := getPremiumBuyerManager()
	if err != nil {
		return nil, err
	}
	return dm.Get(bson.M{"user": userID})
}

// GrantPremium adds time to a user's premium record, creating it when
// absent. The updated record is persisted and returned.
func GrantPremium(userID string, kind models.DurationKind, value int64, grantedBy string) (*models.PremiumBuyer, error) {
	dm, err := getPremiumBuyerManager()
	if err != nil {
		return nil, err
	}

	record, err := dm.Get(bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	if record == nil {
		record = models.NewPremiumBuyer(userID, grantedBy, nowMillis())
	}

	record.AddTime(kind, value, grantedBy, nowMillis())

	return dm.Set(bson.M{"user": userID}, *record)
}

// RevokePremium removes a user's premium record entirely.
func RevokePremium(userID string) error {
	dm, err := getPremiumBuyerManager()
	if err != nil {
		return err
	}

	record, err := dm.Get(bson.M{"user": userID})
	if err != nil {
		return err
	}
	if record == nil {
		return ErrBuyerNotFound
	}

	return dm.Delete(bson.M{"user": userID})
}

// IsPremiumActive reports whether the user currently holds active premium,
// along with the record itself when one exists.
func IsPremiumActive(userID string) (bool, *models.PremiumBuyer, error) {
	record, err := GetPremiumBuyer(userID)
	if err != nil {
		return false, nil, err
	}
	return record.IsActiveAt(nowMillis()), record, nil
}

// ListPremiumBuyers returns every premium record.
func ListPremiumBuyers() ([]*models.PremiumBuyer, error) {
	dm, err := getPremiumBuyerManager()
	if err != nil {
		return nil, err
	}
	return dm.GetAll(bson.M{})
}

// SavePremiumBuyer persists a modified premium record.
func SavePremiumBuyer(record *models.PremiumBuyer) (*models.PremiumBuyer, error) {
	dm, err := getPremiumBuyerManager()
	if err != nil {
		return nil, err
	}
	return dm.Set(bson.M{"user": record.UserID}, *record)
}
