package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/airdrops")

	r.Get("/claimable/:wallet", h.GetClaimableAirdrops)
	r.Get("/:address", h.GetDistributor)
	r.Get("/:address/claimants/:claimant", h.GetClaimant)
	r.Post("/:address/claim", h.PostClaim)
	return nil
}
