// Package campaign manages the donation-drive feed shown on the home screen.
package campaign

import (
	"fmt"
	"time"

	campaignRepo "hemovida/database/repository/campaign"
	"hemovida/models"
	"hemovida/services/updates"

	"github.com/google/uuid"
)

// DefaultFeedLimit mirrors the home screen, which shows the five most recent
// campaigns.
const DefaultFeedLimit = 5

// CampaignService defines business logic for the campaign feed.
type CampaignService interface {
	// List returns up to limit active campaigns; limit <= 0 uses the default.
	List(limit int) ([]models.Campaign, error)
	// Create registers a new campaign and announces it on the feed topic.
	Create(c models.Campaign) (*models.Campaign, error)
	// Update modifies a campaign and announces the change.
	Update(c models.Campaign) (*models.Campaign, error)
}

// DefaultCampaignService is the production implementation.
type DefaultCampaignService struct {
	Repo campaignRepo.CampaignRepository
	Hub  *updates.Hub
}

// List returns up to limit active campaigns.
func (s *DefaultCampaignService) List(limit int) ([]models.Campaign, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return s.Repo.GetActive(limit)
}

// Create registers a new campaign.
func (s *DefaultCampaignService) Create(c models.Campaign) (*models.Campaign, error) {
	if c.Name == "" || c.Institution == "" {
		return nil, fmt.Errorf("campaign name and institution are required")
	}

	c.ID = uuid.New().String()
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Active = true

	if err := s.Repo.Create(&c); err != nil {
		return nil, err
	}
	s.publish(&c)
	return &c, nil
}

// Update modifies an existing campaign.
func (s *DefaultCampaignService) Update(c models.Campaign) (*models.Campaign, error) {
	existing, err := s.Repo.GetByID(c.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("campaign %s not found", c.ID)
	}

	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now()
	if err := s.Repo.Update(&c); err != nil {
		return nil, err
	}
	s.publish(&c)
	return &c, nil
}

func (s *DefaultCampaignService) publish(c *models.Campaign) {
	if s.Hub == nil {
		return
	}
	s.Hub.Publish(updates.Event{
		Topic:   updates.TopicCampaigns,
		Kind:    "campaign",
		Payload: c,
	})
}
