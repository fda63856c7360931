package database

import (
	"errors"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

var ErrPanelNotFound = errors.New("panel not found")

func getPanelManager() (*DataManager[models.Panel], error) {
	if GlobalPanelDM == nil {
		return nil, ErrManagerNotInitialized
	}
	return GlobalPanelDM, nil
}

func getHWIDManager() (*DataManager[models.HWID], error) {
	if GlobalHWIDDM == nil {
		return nil, ErrManagerNotInitialized
	}
	return GlobalHWIDDM, nil
}

// GetPanel returns a panel's configuration, or nil when it was never set up.
func GetPanel(panelType string) (*models.Panel, error) {
	dm, err := getPanelManager()
	if err != nil {
		return nil, err
	}
	return dm.Get(bson.M{"_id": panelType})
}

// SavePanel upserts a panel configuration.
func SavePanel(panel *models.Panel) (*models.Panel, error) {
	dm, err := getPanelManager()
	if err != nil {
		return nil, err
	}
	return dm.Set(bson.M{"_id": panel.Type}, *panel)
}

// SetPanelStatus updates only the status of an existing panel.
func SetPanelStatus(panelType string, status models.PanelStatus) (*models.Panel, error) {
	panel, err := GetPanel(panelType)
	if err != nil {
		return nil, err
	}
	if panel == nil {
		return nil, ErrPanelNotFound
	}
	panel.Status = status
	return SavePanel(panel)
}

// ListPanels returns every configured panel.
func ListPanels() ([]*models.Panel, error) {
	dm, err := getPanelManager()
	if err != nil {
		return nil, err
	}
	return dm.GetAll(bson.M{})
}

// GetHWID returns a user's stored hardware id, or nil when unset.
func GetHWID(userID string) (*models.HWID, error) {
	dm, err := getHWIDManager()
	if err != nil {
		return nil, err
	}
	return dm.Get(bson.M{"user": userID})
}

// SetHWID stores a user's hardware id.
func SetHWID(userID, value string) (*models.HWID, error) {
	dm, err := getHWIDManager()
	if err != nil {
		return nil, err
	}

	record := models.HWID{UserID: userID, Value: value, SetAt: nowMillis()}
	return dm.Set(bson.M{"user": userID}, record)
}

// ResetHWID clears a user's hardware id.
func ResetHWID(userID string) error {
	dm, err := getHWIDManager()
	if err != nil {
		return err
	}
	return dm.Delete(bson.M{"user": userID})
}
