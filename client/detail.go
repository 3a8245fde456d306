package client

import (
	"context"
	"strconv"

	"school-directory/models"
)

// Detail is the single-school page. It fetches the whole list and picks the
// school whose id equals the route parameter.
type Detail struct {
	client *Client
	state  LoadState
	school *models.School
	err    string
}

func NewDetail(c *Client) *Detail {
	return &Detail{client: c, state: Loading}
}

// Load resolves routeID. A missing school and a failed fetch both leave the
// page in the Failed state with different messages.
func (d *Detail) Load(ctx context.Context, routeID string) error {
	d.state = Loading
	d.school = nil
	d.err = ""

	schools, err := d.client.ListSchools(ctx)
	if err != nil {
		d.state = Failed
		if IsAPIError(err) {
			d.err = "Failed to fetch school details"
		} else {
			d.err = "Error fetching school details"
		}
		return err
	}

	id, convErr := strconv.Atoi(routeID)
	for i := range schools {
		if convErr == nil && schools[i].ID == id {
			d.school = &schools[i]
			d.state = Loaded
			return nil
		}
	}
	d.state = Failed
	d.err = "School not found"
	return ErrNotFound
}

func (d *Detail) State() LoadState { return d.state }

func (d *Detail) Err() string { return d.err }

// School is nil unless Load succeeded.
func (d *Detail) School() *models.School { return d.school }

func (d *Detail) Facilities() []string {
	if d.school == nil {
		return []string{}
	}
	return d.school.Facilities.Strings()
}

func (d *Detail) Achievements() []string {
	if d.school == nil {
		return []string{}
	}
	return d.school.Achievements.Strings()
}
