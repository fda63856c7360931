package database

import (
	"errors"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/keygen"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrCodeNotFound = errors.New("redeem code not found")
	ErrKeyNotFound  = errors.New("user key not found")
)

func getRedeemCodeManager() (*DataManager[models.RedeemCode], error) {
	if GlobalRedeemCodeDM == nil {
		return nil, ErrManagerNotInitialized
	}
	return GlobalRedeemCodeDM, nil
}

func getUserKeyManager() (*DataManager[models.UserKey], error) {
	if GlobalUserKeyDM == nil {
		return nil, ErrManagerNotInitialized
	}
	return GlobalUserKeyDM, nil
}

// CreateRedeemCode stores a freshly generated code. On the rare generator
// collision the existing record is returned untouched.
func CreateRedeemCode(code string, rank models.Rank, duration string, createdBy string) (*models.RedeemCode, error) {
	dm, err := getRedeemCodeManager()
	if err != nil {
		return nil, err
	}

	existing, err := dm.Get(bson.M{"_id": code})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	record := models.RedeemCode{
		Code:      code,
		Rank:      rank,
		Duration:  duration,
		Used:      false,
		CreatedAt: nowMillis(),
		CreatedBy: createdBy,
	}

	return dm.Set(bson.M{"_id": code}, record)
}

// GetRedeemCode fetches a code by its value.
func GetRedeemCode(code string) (*models.RedeemCode, error) {
	dm, err := getRedeemCodeManager()
	if err != nil {
		return nil, err
	}

	record, err := dm.Get(bson.M{"_id": code})
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrCodeNotFound
	}
	return record, nil
}

// ConsumeRedeemCode validates and consumes a code for a user inside a guild,
// then issues (or replaces) the user's key. For buyer codes the code record
// is pinned to the redeeming user and guild.
func ConsumeRedeemCode(code, userID, guildID, panelType, script string) (*models.UserKey, error) {
	codeDM, err := getRedeemCodeManager()
	if err != nil {
		return nil, err
	}

	record, err := GetRedeemCode(code)
	if err != nil {
		return nil, err
	}

	if err := record.Consume(userID, guildID); err != nil {
		return nil, err
	}

	if record.Rank == models.RankBuyer {
		if _, err := codeDM.Set(bson.M{"_id": record.Code}, *record); err != nil {
			return nil, err
		}
	}

	key := models.UserKey{
		UserID:     userID,
		Key:        keygen.UserKey(),
		Rank:       record.Rank,
		Duration:   record.Duration,
		RedeemedAt: nowMillis(),
		GuildID:    guildID,
		Script:     script,
		PanelType:  panelType,
	}

	return SaveUserKey(&key)
}

// ListRedeemCodes returns every stored code.
func ListRedeemCodes() ([]*models.RedeemCode, error) {
	dm, err := getRedeemCodeManager()
	if err != nil {
		return nil, err
	}
	return dm.GetAll(bson.M{})
}

// DeleteRedeemCode removes a code.
func DeleteRedeemCode(code string) error {
	dm, err := getRedeemCodeManager()
	if err != nil {
		return err
	}

	if _, err := GetRedeemCode(code); err != nil {
		return err
	}
	return dm.Delete(bson.M{"_id": code})
}

// GetUserKey returns the key a user holds, or ErrKeyNotFound.
func GetUserKey(userID string) (*models.UserKey, error) {
	dm, err := getUserKeyManager()
	if err != nil {
		return nil, err
	}

	key, err := dm.Get(bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, ErrKeyNotFound
	}
	return key, nil
}

// SaveUserKey upserts a user's key. A user only ever holds one.
func SaveUserKey(key *models.UserKey) (*models.UserKey, error) {
	dm, err := getUserKeyManager()
	if err != nil {
		return nil, err
	}
	return dm.Set(bson.M{"user": key.UserID}, *key)
}

// DeleteUserKey removes a user's key.
func DeleteUserKey(userID string) error {
	dm, err := getUserKeyManager()
	if err != nil {
		return err
	}
	return dm.Delete(bson.M{"user": userID})
}

// ListUserKeys returns every issued key.
func ListUserKeys() ([]*models.UserKey, error) {
	dm, err := getUserKeyManager()
	if err != nil {
		return nil, err
	}
	return dm.GetAll(bson.M{})
}
