package database

import (
	"errors"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/keygen"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

var ErrDevKeyNotFound = errors.New("development key not found")

func getDevKeyManager() (*DataManager[models.DevelopmentKey], error) {
	if GlobalDevKeyDM == nil {
		return nil, ErrManagerNotInitialized
	}
	return GlobalDevKeyDM, nil
}

// CreateDevelopmentKey generates and stores a new development key.
func CreateDevelopmentKey(role, playerID string, unlimited bool, createdBy string) (*models.DevelopmentKey, error) {
	dm, err := getDevKeyManager()
	if err != nil {
		return nil, err
	}

	key := keygen.DevKey()

	existing, err := dm.Get(bson.M{"_id": key})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	record := models.DevelopmentKey{
		Key:       key,
		Role:      role,
		PlayerID:  playerID,
		Unlimited: unlimited,
		CreatedAt: nowMillis(),
		CreatedBy: createdBy,
	}

	return dm.Set(bson.M{"_id": key}, record)
}

// GetDevelopmentKey fetches a development key by value.
func GetDevelopmentKey(key string) (*models.DevelopmentKey, error) {
	dm, err := getDevKeyManager()
	if err != nil {
		return nil, err
	}

	record, err := dm.Get(bson.M{"_id": key})
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrDevKeyNotFound
	}
	return record, nil
}

// ConsumeDevelopmentKey redeems a development key for a user. Single-use
// keys are marked used and persisted; unlimited keys stay untouched.
func ConsumeDevelopmentKey(key, userID string) (*models.DevelopmentKey, error) {
	dm, err := getDevKeyManager()
	if err != nil {
		return nil, err
	}

	record, err := GetDevelopmentKey(key)
	if err != nil {
		return nil, err
	}

	if err := record.Consume(userID); err != nil {
		return nil, err
	}

	if !record.Unlimited {
		if _, err := dm.Set(bson.M{"_id": record.Key}, *record); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// ListDevelopmentKeys returns every stored development key.
func ListDevelopmentKeys() ([]*models.DevelopmentKey, error) {
	dm, err := getDevKeyManager()
	if err != nil {
		return nil, err
	}
	return dm.GetAll(bson.M{})
}

// DeleteDevelopmentKey removes a development key.
func DeleteDevelopmentKey(key string) error {
	dm, err := getDevKeyManager()
	if err != nil {
		return err
	}

	if _, err := GetDevelopmentKey(key); err != nil {
		return err
	}
	return dm.Delete(bson.M{"_id": key})
}
