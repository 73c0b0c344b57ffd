package fipe

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// Brand is one vehicle make in the price guide.
type Brand struct {
	Code string `json:"codigo"`
	Name string `json:"nome"`
}

// Model is one vehicle model of a brand.
type Model struct {
	Code int    `json:"codigo"`
	Name string `json:"nome"`
}

// Year is one model-year variant.
type Year struct {
	Code string `json:"codigo"`
	Name string `json:"nome"`
}

// Detail is the priced record of a model-year.
type Detail struct {
	Price     string `json:"Valor"`
	Brand     string `json:"Marca"`
	Model     string `json:"Modelo"`
	ModelYear int    `json:"AnoModelo"`
	FuelType  string `json:"Combustivel"`
	FipeCode  string `json:"CodigoFipe"`
	Reference string `json:"MesReferencia"`
}

type modelsResponse struct {
	Models []Model `json:"modelos"`
}

// VehicleKind maps the app's vehicle types onto the guide's path segments.
func VehicleKind(vehicleType string) string {
	switch vehicleType {
	case "motorcycle":
		return "motos"
	case "truck":
		return "caminhoes"
	default:
		return "carros"
	}
}

// IClient is the read-only price-guide lookup. Every operation degrades to
// an empty result on failure; callers never see a transport error.
type IClient interface {
	Brands(ctx context.Context, vehicleType string) []Brand
	Models(ctx context.Context, vehicleType, brandCode string) []Model
	Years(ctx context.Context, vehicleType, brandCode string, modelCode int) []Year
	Detail(ctx context.Context, vehicleType, brandCode string, modelCode int, yearCode string) *Detail
}

type client struct {
	http *resty.Client
}

// NewClient creates a price-guide client against baseURL.
func NewClient(baseURL string, timeout time.Duration) IClient {
	return &client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

func (c *client) Brands(ctx context.Context, vehicleType string) []Brand {
	var out []Brand
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/%s/marcas", VehicleKind(vehicleType)))
	if err != nil || resp.IsError() {
		log.Printf("fipe: brands lookup failed for %s: %v (status %s)", vehicleType, err, resp.Status())
		return []Brand{}
	}
	return out
}

func (c *client) Models(ctx context.Context, vehicleType, brandCode string) []Model {
	var out modelsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/%s/marcas/%s/modelos", VehicleKind(vehicleType), brandCode))
	if err != nil || resp.IsError() {
		log.Printf("fipe: models lookup failed for brand %s: %v (status %s)", brandCode, err, resp.Status())
		return []Model{}
	}
	return out.Models
}

func (c *client) Years(ctx context.Context, vehicleType, brandCode string, modelCode int) []Year {
	var out []Year
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/%s/marcas/%s/modelos/%d/anos", VehicleKind(vehicleType), brandCode, modelCode))
	if err != nil || resp.IsError() {
		log.Printf("fipe: years lookup failed for model %d: %v (status %s)", modelCode, err, resp.Status())
		return []Year{}
	}
	return out
}

func (c *client) Detail(ctx context.Context, vehicleType, brandCode string, modelCode int, yearCode string) *Detail {
	var out Detail
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/%s/marcas/%s/modelos/%d/anos/%s", VehicleKind(vehicleType), brandCode, modelCode, yearCode))
	if err != nil || resp.IsError() {
		log.Printf("fipe: detail lookup failed for model %d year %s: %v (status %s)", modelCode, yearCode, err, resp.Status())
		return nil
	}
	return &out
}
