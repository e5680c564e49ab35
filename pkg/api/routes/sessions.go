package routes

import (
	"strconv"
	"strings"

	"github.com/busrute/busrute/pkg/ctdf"
	"github.com/busrute/busrute/pkg/mapview"
	"github.com/busrute/busrute/pkg/planner"
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
)

type endpointRequest struct {
	Name string `json:"name"`
	Lat  any    `json:"lat"`
	Lng  any    `json:"lng"`
}

func SessionsRouter(router fiber.Router, manager *planner.SessionManager) {
	sessions := sessionsHandler{manager: manager}

	router.Post("/", sessions.create)
	router.Get("/:id", sessions.get)
	router.Get("/:id/map", sessions.renderMap)

	router.Put("/:id/origin", sessions.setEndpoint(func(s *planner.Session, place ctdf.Place) { s.SetOrigin(place) }))
	router.Put("/:id/destination", sessions.setEndpoint(func(s *planner.Session, place ctdf.Place) { s.SetDestination(place) }))
	router.Post("/:id/swap", sessions.swap)

	router.Post("/:id/search", sessions.search)
	router.Post("/:id/select/:index", sessions.selectItinerary)
	router.Post("/:id/list/show", sessions.showList)
	router.Post("/:id/list/hide", sessions.hideList)
}

type sessionsHandler struct {
	manager *planner.SessionManager
}

func (h sessionsHandler) create(c *fiber.Ctx) error {
	session := h.manager.Create()

	c.Status(fiber.StatusCreated)
	return sendView(c, session.View(), "basic")
}

func (h sessionsHandler) get(c *fiber.Ctx) error {
	session, err := h.manager.Get(c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	return sendView(c, session.View(), "basic", "detailed")
}

func (h sessionsHandler) setEndpoint(apply func(*planner.Session, ctdf.Place)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := h.manager.Get(c.Params("id"))
		if err != nil {
			return sendError(c, err)
		}

		var body endpointRequest
		if err := c.BodyParser(&body); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Body should be a JSON object with lat, lng and name",
			})
		}

		point, ok := ctdf.LatLng(body.Lat, body.Lng).Sanitize()
		if !ok {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameters lat and lng should both be numbers",
			})
		}

		apply(session, ctdf.Place{Name: strings.TrimSpace(body.Name), Point: point})

		return sendView(c, session.View(), "basic")
	}
}

func (h sessionsHandler) swap(c *fiber.Ctx) error {
	session, err := h.manager.Get(c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	session.Swap()

	return sendView(c, session.View(), "basic")
}

func (h sessionsHandler) search(c *fiber.Ctx) error {
	session, err := h.manager.Get(c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	if err := session.Search(c.UserContext()); err != nil {
		return sendError(c, err)
	}

	return sendView(c, session.View(), "basic")
}

func (h sessionsHandler) selectItinerary(c *fiber.Ctx) error {
	session, err := h.manager.Get(c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter index should be an integer",
		})
	}

	if err := session.Select(c.UserContext(), index); err != nil {
		return sendError(c, err)
	}

	return sendView(c, session.View(), "basic", "detailed")
}

func (h sessionsHandler) showList(c *fiber.Ctx) error {
	session, err := h.manager.Get(c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	session.Show()

	return sendView(c, session.View(), "basic")
}

func (h sessionsHandler) hideList(c *fiber.Ctx) error {
	session, err := h.manager.Get(c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	session.Hide()

	return sendView(c, session.View(), "basic")
}

func (h sessionsHandler) renderMap(c *fiber.Ctx) error {
	session, err := h.manager.Get(c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	zoomLevel, err := strconv.Atoi(c.Query("zoom", "4"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter zoom should be an integer",
		})
	}

	state := session.State()

	surface := mapview.NewGeoJSONSurface()
	mapview.Render(surface, state.Segments, state.Bounds, zoomLevel)

	geoJSON, err := surface.MarshalJSON()
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not encode map features",
		})
	}

	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(geoJSON)
}

func sendView(c *fiber.Ctx, view planner.View, groups ...string) error {
	reducedView, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, view)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce session view",
		})
	}

	return c.JSON(reducedView)
}
