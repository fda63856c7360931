package database

import (
	"errors"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrRequestNotFound       = errors.New("partner request not found")
	ErrReceiverNotConfigured = errors.New("partner receiver not configured")
)

func getPartnerRequestManager() (*DataManager[models.PartnerRequest], error) {
	if GlobalPartnerRequestDM == nil {
		return nil, ErrManagerNotInitialized
	}
	return GlobalPartnerRequestDM, nil
}

func getPartnerConfigManager() (*DataManager[models.PartnerConfig], error) {
	if GlobalPartnerConfigDM == nil {
		return nil, ErrManagerNotInitialized
	}
	return GlobalPartnerConfigDM, nil
}

// GetPartnerConfig returns the receiver configuration for a guild, or
// ErrReceiverNotConfigured when none was ever set.
func GetPartnerConfig(guildID string) (*models.PartnerConfig, error) {
	dm, err := getPartnerConfigManager()
	if err != nil {
		return nil, err
	}

	cfg, err := dm.Get(bson.M{"guild": guildID})
	if err != nil {
		return nil, err
	}
	if cfg == nil || cfg.ReceiverID == "" {
		return nil, ErrReceiverNotConfigured
	}
	return cfg, nil
}

// SetPartnerConfig stores the user that receives partner requests in a guild.
func SetPartnerConfig(guildID, receiverID string) (*models.PartnerConfig, error) {
	dm, err := getPartnerConfigManager()
	if err != nil {
		return nil, err
	}

	cfg := models.PartnerConfig{GuildID: guildID, ReceiverID: receiverID}
	return dm.Set(bson.M{"guild": guildID}, cfg)
}

// SavePartnerRequest upserts a partner request by its id.
func SavePartnerRequest(req *models.PartnerRequest) (*models.PartnerRequest, error) {
	dm, err := getPartnerRequestManager()
	if err != nil {
		return nil, err
	}
	return dm.Set(bson.M{"_id": req.RequestID}, *req)
}

// GetPartnerRequest fetches a partner request by id.
func GetPartnerRequest(requestID string) (*models.PartnerRequest, error) {
	dm, err := getPartnerRequestManager()
	if err != nil {
		return nil, err
	}

	req, err := dm.Get(bson.M{"_id": requestID})
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

// ListPartnerRequests returns partner requests, optionally filtered by
// guild and status. Empty filters match everything.
func ListPartnerRequests(guildID string, status models.PartnerStatus) ([]*models.PartnerRequest, error) {
	dm, err := getPartnerRequestManager()
	if err != nil {
		return nil, err
	}

	query := bson.M{}
	if guildID != "" {
		query["guild_id"] = guildID
	}
	if status != "" {
		query["status"] = status
	}
	return dm.GetAll(query)
}

// DeletePartnerRequest removes a partner request.
func DeletePartnerRequest(requestID string) error {
	dm, err := getPartnerRequestManager()
	if err != nil {
		return err
	}
	return dm.Delete(bson.M{"_id": requestID})
}
