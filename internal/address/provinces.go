package address

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ProvincesClient proxies the Vietnamese administrative-units API so the
// frontend never talks to the third party directly.
type ProvincesClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewProvincesClient(baseURL string) *ProvincesClient {
	return &ProvincesClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type Unit struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

type provinceResponse struct {
	Unit
	Districts []Unit `json:"districts"`
}

type districtResponse struct {
	Unit
	Wards []Unit `json:"wards"`
}

func (c *ProvincesClient) get(path string, out interface{}) error {
	res, err := c.HTTP.Get(c.BaseURL + path)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("provinces api: unexpected status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *ProvincesClient) Provinces() ([]Unit, error) {
	var units []Unit
	if err := c.get("/p/", &units); err != nil {
		return nil, err
	}
	return units, nil
}

func (c *ProvincesClient) Districts(provinceCode int) ([]Unit, error) {
	var p provinceResponse
	if err := c.get(fmt.Sprintf("/p/%d?depth=2", provinceCode), &p); err != nil {
		return nil, err
	}
	return p.Districts, nil
}

func (c *ProvincesClient) Wards(districtCode int) ([]Unit, error) {
	var d districtResponse
	if err := c.get(fmt.Sprintf("/d/%d?depth=2", districtCode), &d); err != nil {
		return nil, err
	}
	return d.Wards, nil
}
