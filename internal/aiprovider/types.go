// Package aiprovider реализует клиент размещённого генеративного API,
// используемого для генерации подписей.
package aiprovider

// GenerateRequest тело запроса генерации текста.
type GenerateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Count       int     `json:"n"`
	Temperature float64 `json:"temperature"`
}

// GenerateResponse ответ генеративного API.
type GenerateResponse struct {
	Choices []Choice `json:"choices"`
}

// Choice один вариант сгенерированного текста.
type Choice struct {
	Text string `json:"text"`
}
