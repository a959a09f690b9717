package campaignRepo

import "hemovida/models"

// CampaignRepository defines methods for campaign data access.
type CampaignRepository interface {
	// GetByID retrieves a campaign by its unique ID, nil when absent.
	GetByID(id string) (*models.Campaign, error)
	// GetActive retrieves up to limit active campaigns, newest first.
	GetActive(limit int) ([]models.Campaign, error)
	// Create inserts a new campaign record.
	Create(c *models.Campaign) error
	// Update replaces an existing campaign record.
	Update(c *models.Campaign) error
}
