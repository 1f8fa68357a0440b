package dto

type HostResponse struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type ListHostsResponse struct {
	Hosts []HostResponse `json:"hosts"`
}
