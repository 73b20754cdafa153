package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/homelink/smarthome-system/internal/api/metrics"
	"github.com/homelink/smarthome-system/internal/core/domain"
	"github.com/homelink/smarthome-system/internal/core/ports"
)

// GraphQLHandler serves the single POST /query endpoint the mobile client
// talks to. All home, area, equipment, and login traffic goes through here.
type GraphQLHandler struct {
	authService ports.AuthService
	homeService ports.HomeService
	log         zerolog.Logger
}

func NewGraphQLHandler(authService ports.AuthService, homeService ports.HomeService, log zerolog.Logger) *GraphQLHandler {
	return &GraphQLHandler{
		authService: authService,
		homeService: homeService,
		log:         log,
	}
}

type loginVariables struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginPayload is the LoginAccount result: the account snapshot plus the
// bearer token the client stores for subsequent requests.
type loginPayload struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Token    string `json:"token"`
}

type homeVariables struct {
	ID       string `json:"id"`
	HomeName string `json:"homeName"`
	Location string `json:"location"`
}

type areaVariables struct {
	ID     string `json:"id"`
	HomeID string `json:"homeId"`
	Name   string `json:"name"`
}

type equipmentVariables struct {
	ID          string `json:"id"`
	CategoryID  int    `json:"categoryId"`
	HomeID      string `json:"homeId"`
	AreaID      string `json:"areaId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TimeStart   string `json:"timeStart"`
	TimeEnd     string `json:"timeEnd"`
	Cycle       int    `json:"cycle"`
	Status      string `json:"status"`
}

type deviceVariables struct {
	ID     string `json:"id"`
	TurnOn bool   `json:"turnOn"`
}

// Handle resolves one GraphQL request. Resolver failures are reported inside
// the envelope with HTTP 200; authentication failures surface as HTTP 401 so
// the client can distinguish an expired session from an operation error.
func (h *GraphQLHandler) Handle(c echo.Context) error {
	var req graphqlRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	op, err := parseDocument(req.Query)
	if err != nil {
		metrics.GraphQLRequestsTotal.WithLabelValues("invalid", "error").Inc()
		return c.JSON(http.StatusOK, graphqlResponse{Errors: []graphqlError{{Message: err.Error()}}})
	}

	result, err := h.resolve(c, op, req)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			// Auth failures keep their status code; the client relies on 401.
			metrics.GraphQLRequestsTotal.WithLabelValues(op.Field, "error").Inc()
			return err
		}
		metrics.GraphQLRequestsTotal.WithLabelValues(op.Field, "error").Inc()
		h.log.Debug().Err(err).Str("field", op.Field).Msg("graphql operation failed")
		return c.JSON(http.StatusOK, graphqlResponse{Errors: []graphqlError{{Message: err.Error()}}})
	}

	metrics.GraphQLRequestsTotal.WithLabelValues(op.Field, "ok").Inc()
	return c.JSON(http.StatusOK, graphqlResponse{Data: map[string]any{op.Field: result}})
}

func (h *GraphQLHandler) resolve(c echo.Context, op operation, req graphqlRequest) (any, error) {
	ctx := c.Request().Context()

	// getHome is the only query; everything else mutates.
	if op.Field == "getHome" {
		accountID, err := ctxAccountID(c)
		if err != nil {
			return nil, err
		}
		return h.homeService.GetHomes(ctx, accountID)
	}
	if !op.Mutation {
		return nil, errMutationForbids
	}

	if op.Field == "LoginAccount" {
		var in loginVariables
		if err := decodeVariable(req.Variables, &in, "input", "account"); err != nil {
			return nil, err
		}
		token, account, err := h.authService.Login(ctx, in.Email, in.Password)
		if err != nil {
			return nil, err
		}
		return loginPayload{
			ID:       account.ID,
			FullName: account.FullName,
			Email:    account.Email,
			Phone:    account.Phone,
			Token:    token,
		}, nil
	}

	// Everything below requires an authenticated account.
	accountID, err := ctxAccountID(c)
	if err != nil {
		return nil, err
	}

	switch op.Field {
	case "createHome":
		var in homeVariables
		if err := decodeVariable(req.Variables, &in, "home", "input"); err != nil {
			return nil, err
		}
		return h.homeService.CreateHome(ctx, accountID, ports.HomeInput{HomeName: in.HomeName, Location: in.Location})

	case "editHome":
		var in homeVariables
		if err := decodeVariable(req.Variables, &in, "home", "input"); err != nil {
			return nil, err
		}
		return h.homeService.EditHome(ctx, accountID, ports.HomeInput{ID: in.ID, HomeName: in.HomeName, Location: in.Location})

	case "deleteHome":
		var in homeVariables
		if err := decodeVariable(req.Variables, &in, "home", "input"); err != nil {
			return nil, err
		}
		return h.homeService.DeleteHome(ctx, accountID, in.ID)

	case "createArea":
		var in areaVariables
		if err := decodeVariable(req.Variables, &in, "input", "area"); err != nil {
			return nil, err
		}
		return h.homeService.CreateArea(ctx, accountID, ports.AreaInput{HomeID: in.HomeID, Name: in.Name})

	case "editArea":
		var in areaVariables
		if err := decodeVariable(req.Variables, &in, "area", "input"); err != nil {
			return nil, err
		}
		return h.homeService.EditArea(ctx, accountID, ports.AreaInput{ID: in.ID, HomeID: in.HomeID, Name: in.Name})

	case "deleteArea":
		var in areaVariables
		if err := decodeVariable(req.Variables, &in, "area", "input"); err != nil {
			return nil, err
		}
		return h.homeService.DeleteArea(ctx, accountID, in.ID)

	case "createEquipment":
		var in equipmentVariables
		if err := decodeVariable(req.Variables, &in, "equipment", "input"); err != nil {
			return nil, err
		}
		return h.homeService.CreateEquipment(ctx, accountID, ports.EquipmentInput{
			CategoryID:  in.CategoryID,
			HomeID:      in.HomeID,
			AreaID:      in.AreaID,
			Title:       in.Title,
			Description: in.Description,
			TimeStart:   in.TimeStart,
			TimeEnd:     in.TimeEnd,
			Cycle:       in.Cycle,
			Status:      in.Status,
		})

	case "deleteEquipment":
		var in equipmentVariables
		if err := decodeVariable(req.Variables, &in, "equipment", "input"); err != nil {
			return nil, err
		}
		return h.homeService.DeleteEquipment(ctx, accountID, in.ID)

	case "toggleDevice":
		var in deviceVariables
		if err := decodeVariable(req.Variables, &in, "device", "input"); err != nil {
			return nil, err
		}
		applied, err := h.homeService.ToggleDevice(ctx, accountID, in.ID, in.TurnOn)
		switch {
		case errors.Is(err, domain.ErrDeviceUnavailable):
			metrics.DeviceTogglesTotal.WithLabelValues("unavailable").Inc()
			return nil, err
		case err != nil:
			metrics.DeviceTogglesTotal.WithLabelValues("error").Inc()
			return nil, err
		}
		metrics.DeviceTogglesTotal.WithLabelValues("applied").Inc()
		return applied, nil

	default:
		return nil, errors.New("unknown field: " + op.Field)
	}
}
