package apiclient

type CoingeckoCoinInfo struct {
	ID     string             `json:"id"`
	Symbol string             `json:"symbol"`
	Name   string             `json:"name"`
	Image  CoingeckoCoinImage `json:"image"`
}

type CoingeckoCoinImage struct {
	Thumb string `json:"thumb"`
	Small string `json:"small"`
	Large string `json:"large"`
}
