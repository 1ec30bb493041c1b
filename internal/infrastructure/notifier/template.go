package notifier

import (
	"html/template"
	"strings"

	"pricewatch/internal/domain/entity"
)

const bodyTimeFormat = "2006-01-02 15:04:05"

var bodyTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #333;">
    <h2>{{.WhatHasChanged}} of {{.Product}} has changed</h2>
    <table cellpadding="6">
      <tr>
        <td><b>Then</b> ({{.PreviousDate}})</td>
        <td>{{.PreviousState}}</td>
      </tr>
      <tr>
        <td><b>Now</b> ({{.CurrentDate}})</td>
        <td>{{.CurrentState}}</td>
      </tr>
    </table>
    <p><a href="{{.URL}}">Go to the offer</a></p>
  </body>
</html>
`))

type bodyData struct {
	WhatHasChanged string
	Product        string
	URL            string
	PreviousDate   string
	PreviousState  string
	CurrentDate    string
	CurrentState   string
}

func renderBody(product entity.Product, offer entity.Offer, previousPrice, newPrice entity.Price) (string, error) {
	whatHasChanged := "Price"
	if previousPrice.Availability != newPrice.Availability {
		whatHasChanged = "Availability"
	}

	var b strings.Builder

	err := bodyTemplate.Execute(&b, bodyData{
		WhatHasChanged: whatHasChanged,
		Product:        product.Name,
		URL:            offer.URL,
		PreviousDate:   previousPrice.CreatedAt.Format(bodyTimeFormat),
		PreviousState:  priceState(previousPrice),
		CurrentDate:    newPrice.CreatedAt.Format(bodyTimeFormat),
		CurrentState:   priceState(newPrice),
	})
	if err != nil {
		return "", err
	}

	return b.String(), nil
}
