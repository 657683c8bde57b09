package peers

import (
	"context"
	"net/http"
	"time"

	"revamp/models"
)

// BookingGateway is staffing's client for the booking service.
type BookingGateway interface {
	RemoveAssignment(ctx context.Context, req models.RemoveEmployeeRequest) (*models.RemovalResult, error)
}

type httpBookingGateway struct {
	client *jsonClient
}

func NewBookingGateway(baseURL string, timeout time.Duration, httpClient *http.Client) BookingGateway {
	return &httpBookingGateway{client: newJSONClient(baseURL, timeout, httpClient)}
}

func (g *httpBookingGateway) RemoveAssignment(ctx context.Context, req models.RemoveEmployeeRequest) (*models.RemovalResult, error) {
	var out models.RemovalResult
	if err := g.client.do(ctx, "remove assignment", http.MethodPut, "/api/bookings/appointments/v1/remove-employee", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
