package models

import "time"

// Seed data. These are the defaults every persisted collection falls back to
// when its storage key is missing or unreadable, plus the static curated
// collections that are merged into the global views but never persisted.

var seedTime = time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)

// SeedUser returns the default account profile.
func SeedUser() User {
	return User{
		ID:        "u-demo",
		Name:      "Ricardo Almeida",
		Email:     "ricardo.almeida@example.com",
		Phone:     "+55 41 99876-1122",
		Location:  "Curitiba, PR",
		IsAdmin:   false,
		CreatedAt: seedTime,
		UpdatedAt: seedTime,
	}
}

// SeedOwnedListings returns the default owned-listings collection.
func SeedOwnedListings() []Listing {
	return []Listing{
		{
			ID:          "own1",
			Title:       "Fiat Argo Drive 1.0 2021",
			Description: "Unico dono, revisoes em dia, pneus novos.",
			Price:       64900,
			Status:      StatusActive,
			Category:    CategoryVehicle,
			Details: VehicleDetails{
				VehicleType: "car",
				Brand:       "Fiat",
				Model:       "Argo Drive 1.0",
				Year:        2021,
				Mileage:     43200,
				FuelType:    "flex",
				Gearbox:     "manual",
				Color:       "prata",
			},
			BoostPlan: BoostNone,
			OwnerID:   "u-demo",
			OwnerName: "Ricardo Almeida",
			Location:  "Curitiba, PR",
			Image:     "listings/own1/cover.jpg",
			Images:    []string{"listings/own1/cover.jpg", "listings/own1/interior.jpg"},
			Features:  []string{"ar-condicionado", "direcao eletrica"},
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
		{
			ID:          "own2",
			Title:       "Jogo de rodas aro 17",
			Description: "Rodas originais, sem trincas, com pneus meia-vida.",
			Price:       2400,
			Status:      StatusPending,
			Category:    CategoryParts,
			Details: PartDetails{
				PartType:  PartTypeAccessory,
				Condition: "used",
			},
			BoostPlan: BoostNone,
			OwnerID:   "u-demo",
			OwnerName: "Ricardo Almeida",
			Location:  "Curitiba, PR",
			Image:     "listings/own2/cover.jpg",
			Images:    []string{"listings/own2/cover.jpg"},
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
	}
}

// SeedFavorites returns the default favorites collection (empty).
func SeedFavorites() []Listing { return []Listing{} }

// SeedFeaturedListings is the curated featured collection merged into the
// featured view. Static: not persisted, not user-mutable.
func SeedFeaturedListings() []Listing {
	return []Listing{
		{
			ID:          "feat1",
			Title:       "Honda Civic Touring 1.5 Turbo 2023",
			Description: "Blindado, teto solar, garantia de fabrica.",
			Price:       189900,
			Status:      StatusActive,
			Category:    CategoryVehicle,
			Details: VehicleDetails{
				VehicleType: "car",
				Brand:       "Honda",
				Model:       "Civic Touring",
				Year:        2023,
				Mileage:     12000,
				FuelType:    "gasolina",
				Gearbox:     "cvt",
				Color:       "preto",
			},
			IsFeatured: true,
			BoostPlan:  BoostPremium,
			OwnerID:    "u-store-central",
			OwnerName:  "Central Motors",
			Location:   "Sao Paulo, SP",
			Image:      "listings/feat1/cover.jpg",
			Images:     []string{"listings/feat1/cover.jpg"},
			CreatedAt:  seedTime,
			UpdatedAt:  seedTime,
		},
		{
			ID:          "feat2",
			Title:       "Apartamento 2 quartos - Agua Verde",
			Description: "67m2, sacada com churrasqueira, 1 vaga.",
			Price:       439000,
			Status:      StatusActive,
			Category:    CategoryRealEstate,
			Details: PropertyDetails{
				PropertyType: "apartment",
				Purpose:      "sale",
				AreaM2:       67,
				Bedrooms:     2,
				Bathrooms:    2,
				ParkingSpots: 1,
			},
			IsFeatured: true,
			BoostPlan:  BoostAdvanced,
			OwnerID:    "u-imob-sul",
			OwnerName:  "Imobiliaria Sul",
			Location:   "Curitiba, PR",
			Image:      "listings/feat2/cover.jpg",
			Images:     []string{"listings/feat2/cover.jpg"},
			CreatedAt:  seedTime,
			UpdatedAt:  seedTime,
		},
		{
			// Featured without a plan: legacy-featured, sorts below any paid tier.
			ID:          "feat3",
			Title:       "Higienizacao interna completa",
			Description: "Limpeza tecnica de estofados e ar-condicionado.",
			Price:       280,
			Status:      StatusActive,
			Category:    CategoryParts,
			Details: PartDetails{
				PartType: PartTypeCleaning,
			},
			IsFeatured: true,
			BoostPlan:  BoostNone,
			OwnerID:    "u-estetica-jm",
			OwnerName:  "JM Estetica Automotiva",
			Location:   "Colombo, PR",
			Image:      "listings/feat3/cover.jpg",
			Images:     []string{"listings/feat3/cover.jpg"},
			CreatedAt:  seedTime,
			UpdatedAt:  seedTime,
		},
	}
}

// SeedPopularListings is the curated "popular" collection merged into the
// global pool. Static: not persisted.
func SeedPopularListings() []Listing {
	return []Listing{
		{
			ID:          "pop1",
			Title:       "VW Gol 1.6 MSI 2019",
			Description: "Completo, IPVA pago.",
			Price:       52900,
			Status:      StatusActive,
			Category:    CategoryVehicle,
			Details: VehicleDetails{
				VehicleType: "car",
				Brand:       "Volkswagen",
				Model:       "Gol 1.6 MSI",
				Year:        2019,
				Mileage:     78000,
				FuelType:    "flex",
				Gearbox:     "manual",
				Color:       "branco",
			},
			BoostPlan: BoostNone,
			OwnerID:   "u-carlos",
			OwnerName: "Carlos Mendes",
			Location:  "Sao Jose dos Pinhais, PR",
			Image:     "listings/pop1/cover.jpg",
			Images:    []string{"listings/pop1/cover.jpg"},
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
		{
			ID:          "pop2",
			Title:       "Casa 3 quartos com edicula",
			Description: "Terreno 360m2, casa 140m2, aceita financiamento.",
			Price:       520000,
			Status:      StatusActive,
			Category:    CategoryRealEstate,
			Details: PropertyDetails{
				PropertyType: "house",
				Purpose:      "sale",
				AreaM2:       140,
				Bedrooms:     3,
				Bathrooms:    2,
				ParkingSpots: 2,
			},
			BoostPlan: BoostBasic,
			OwnerID:   "u-marcia",
			OwnerName: "Marcia Ferreira",
			Location:  "Pinhais, PR",
			Image:     "listings/pop2/cover.jpg",
			Images:    []string{"listings/pop2/cover.jpg"},
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
	}
}

// SeedAdminListings is the moderation queue mock used by the back-office.
// Loaded into the in-memory admin pool at startup; mutations to it are
// intentionally ephemeral (the persisted layout has no key for it).
func SeedAdminListings() []Listing {
	return []Listing{
		{
			ID:          "adm1",
			Title:       "Yamaha Fazer 250 2022",
			Description: "Moto revisada, unico dono.",
			Price:       21500,
			Status:      StatusPending,
			Category:    CategoryVehicle,
			Details: VehicleDetails{
				VehicleType: "motorcycle",
				Brand:       "Yamaha",
				Model:       "Fazer 250",
				Year:        2022,
				Mileage:     9800,
			},
			BoostPlan: BoostAdvanced,
			OwnerID:   "u-paulo",
			OwnerName: "Paulo Souza",
			Location:  "Curitiba, PR",
			Image:     "listings/adm1/cover.jpg",
			Images:    []string{"listings/adm1/cover.jpg"},
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
		{
			ID:          "adm2",
			Title:       "Kit suspensao fixa",
			Description: "Kit novo na caixa, nota fiscal.",
			Price:       1850,
			Status:      StatusPending,
			Category:    CategoryParts,
			Details: PartDetails{
				PartType:  PartTypeComponent,
				Condition: "new",
			},
			BoostPlan: BoostNone,
			OwnerID:   "u-lojao-pecas",
			OwnerName: "Lojao das Pecas",
			Location:  "Araucaria, PR",
			Image:     "listings/adm2/cover.jpg",
			Images:    []string{"listings/adm2/cover.jpg"},
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
	}
}

// SeedBanners returns the default banner set for one placement channel.
func SeedBanners(channel BannerChannel) []Banner {
	expiry := seedTime.AddDate(1, 0, 0)
	switch channel {
	case ChannelDashboard:
		return []Banner{
			{ID: "ban-dash-1", Channel: channel, Title: "Feirao de Marco", ImageURL: "banners/feirao-marco.jpg", LinkURL: "/fair", Active: true, ExpiresAt: expiry, CreatedAt: seedTime},
		}
	case ChannelVehicles:
		return []Banner{
			{ID: "ban-veh-1", Channel: channel, Title: "Taxa zero em seminovos", ImageURL: "banners/taxa-zero.jpg", Active: true, ExpiresAt: expiry, CreatedAt: seedTime},
		}
	case ChannelRealEstate:
		return []Banner{
			{ID: "ban-re-1", Channel: channel, Title: "Financie em ate 35 anos", ImageURL: "banners/financiamento.jpg", Active: true, ExpiresAt: expiry, CreatedAt: seedTime},
		}
	case ChannelParts:
		return []Banner{
			{ID: "ban-parts-1", Channel: channel, Title: "Semana da revisao", ImageURL: "banners/revisao.jpg", Active: true, ExpiresAt: expiry, CreatedAt: seedTime},
		}
	}
	return []Banner{}
}

// SeedNotifications returns the default notifications collection.
func SeedNotifications() []Notification {
	return []Notification{
		{
			ID:        "not1",
			Type:      NotificationSystem,
			Title:     "Bem-vindo ao FeiraStudio",
			Body:      "Seu anuncio aparece aqui assim que for aprovado.",
			Read:      false,
			CreatedAt: seedTime,
		},
	}
}

// SeedReports returns the default reports collection.
func SeedReports() []Report {
	return []Report{
		{
			ID:          "rep1",
			Target:      ReportTargetListing,
			TargetID:    "pop1",
			TargetName:  "VW Gol 1.6 MSI 2019",
			TargetImage: "listings/pop1/cover.jpg",
			Reason:      "Preco muito abaixo do mercado, possivel golpe.",
			Severity:    SeverityMedium,
			Status:      ReportPending,
			CreatedAt:   seedTime,
		},
	}
}

// Default global flags.
const (
	SeedFairMode    = false
	SeedMaintenance = false
)
