package routes

import (
	"strings"

	"github.com/busrute/busrute/pkg/ctdf"
	"github.com/busrute/busrute/pkg/dataaggregator"
	"github.com/busrute/busrute/pkg/dataaggregator/query"
	"github.com/gofiber/fiber/v2"
)

func PlacesRouter(router fiber.Router) {
	router.Get("/", searchPlaces)
}

func searchPlaces(c *fiber.Ctx) error {
	keyword := strings.TrimSpace(c.Query("query"))
	if keyword == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter query is required",
		})
	}

	placeSearch := query.PlaceSearch{Keyword: keyword}

	if c.Query("lat") != "" || c.Query("lng") != "" {
		near, ok := ctdf.LatLng(c.Query("lat"), c.Query("lng")).Sanitize()
		if !ok {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameters lat and lng should both be numbers",
			})
		}
		placeSearch.Near = &near
	}

	places, err := dataaggregator.Lookup[[]ctdf.Place](c.UserContext(), placeSearch)
	if err != nil {
		return sendError(c, err)
	}

	if places == nil {
		places = []ctdf.Place{}
	}

	return c.JSON(places)
}
