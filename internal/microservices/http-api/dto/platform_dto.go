package dto

import "watchmate/internal/microservices/http-api/models"

// PlatformRequest used for POST /stream/ and PUT /stream/:id/
type PlatformRequest struct {
	Name    string `json:"name" binding:"required,max=30"`
	About   string `json:"about" binding:"required,max=150"`
	Website string `json:"website" binding:"required,url,max=100"`
}

type PlatformResponse struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	About     string              `json:"about"`
	Website   string              `json:"website"`
	WatchList []WatchListResponse `json:"watchlist"`
}

func (d PlatformRequest) ApplyTo(p *models.StreamPlatform) {
	p.Name = d.Name
	p.About = d.About
	p.Website = d.Website
}

func FromModelToPlatformResponse(p models.StreamPlatform) PlatformResponse {
	items := make([]WatchListResponse, 0, len(p.WatchList))
	for _, w := range p.WatchList {
		w.Platform = &p
		items = append(items, FromModelToWatchListResponse(w))
	}
	return PlatformResponse{
		ID:        p.ID,
		Name:      p.Name,
		About:     p.About,
		Website:   p.Website,
		WatchList: items,
	}
}
