//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"ekicare/internal/domain/user"
	"ekicare/internal/handler/api"
	resdto "ekicare/internal/handler/dto/response"
	"ekicare/internal/handler/validation"
	"ekicare/internal/infra/distance"
	"ekicare/internal/usecase/commands"
	"ekicare/internal/usecase/queries"
	"ekicare/tests/common/httptest"
	commandsmock "ekicare/tests/mock/commands"
	queriesmock "ekicare/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SchedulingHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockCtrl          *gomock.Controller
	mockAvailability  *queriesmock.MockAvailabilityQueries
	mockRelationships *queriesmock.MockRelationshipQueries
	mockDistance      *queriesmock.MockDistanceQueries
	mockSweep         *commandsmock.MockSweepCommands
	mockEnsure        *commandsmock.MockRelationshipCommands
	userID            uuid.UUID
}

func (s *SchedulingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(validation.Register())
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockAvailability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.mockRelationships = queriesmock.NewMockRelationshipQueries(s.mockCtrl)
	s.mockDistance = queriesmock.NewMockDistanceQueries(s.mockCtrl)
	s.mockSweep = commandsmock.NewMockSweepCommands(s.mockCtrl)
	s.mockEnsure = commandsmock.NewMockRelationshipCommands(s.mockCtrl)
	s.userID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RolePro)
		c.Next()
	}

	availability := api.NewAvailabilityHandler(s.mockAvailability)
	relationships := api.NewRelationshipHandler(s.mockRelationships)
	dist := api.NewDistanceHandler(s.mockDistance)
	maintenance := api.NewMaintenanceHandler(s.mockSweep, s.mockEnsure)

	s.router.GET("/professionals/:id/booked-slots", authMiddleware, availability.BookedSlots)
	s.router.GET("/professionals/me/clients", authMiddleware, relationships.ListClients)
	s.router.GET("/distance", authMiddleware, dist.Get)
	s.router.POST("/internal/sweeps/completion", maintenance.RunCompletionSweep)
	s.router.POST("/internal/relationships", maintenance.EnsureRelationship)
}

func (s *SchedulingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSchedulingHandlerSuite(t *testing.T) {
	suite.Run(t, new(SchedulingHandlerTestSuite))
}

func (s *SchedulingHandlerTestSuite) TestBookedSlots() {
	proID := uuid.New()
	url := "/professionals/" + proID.String() + "/booked-slots?date=2025-03-10"

	s.Run("success: returns slots for the day", func() {
		s.mockAvailability.EXPECT().BookedSlots(gomock.Any(), proID, "2025-03-10").
			Return(&queries.BookedSlotsView{ProfessionalID: proID, Date: "2025-03-10", Slots: []string{"09:00", "14:30"}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.BookedSlotsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal([]string{"09:00", "14:30"}, response.Slots)
	})

	s.Run("success: empty day renders an empty array", func() {
		s.mockAvailability.EXPECT().BookedSlots(gomock.Any(), proID, "2025-03-10").
			Return(&queries.BookedSlotsView{ProfessionalID: proID, Date: "2025-03-10"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"slots":[]`)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queriesError   error
			expectedStatus int
		}{
			{name: "unknown professional", queriesError: queries.ErrProfessionalNotFound, expectedStatus: http.StatusNotFound},
			{name: "internal server error", queriesError: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockAvailability.EXPECT().BookedSlots(gomock.Any(), proID, gomock.Any()).
					Return(nil, tc.queriesError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

func (s *SchedulingHandlerTestSuite) TestListClients() {
	s.Run("success: returns the client list", func() {
		since := time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC)
		clients := []*queries.ClientView{{OwnerID: uuid.New(), OwnerName: "Claire Dubois", Since: since}}
		s.mockRelationships.EXPECT().ListClients(gomock.Any(), user.NewActor(s.userID, user.RolePro)).
			Return(clients, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/professionals/me/clients", nil, "")

		var response []resdto.ClientResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 1)
		s.Equal("Claire Dubois", response[0].OwnerName)
		s.Equal(since.Unix(), response[0].Since)
	})
}

func (s *SchedulingHandlerTestSuite) TestDistance() {
	s.Run("success: returns the route", func() {
		s.mockDistance.EXPECT().Between(gomock.Any(), "Lyon", "Paris").
			Return(&queries.DistanceView{From: "Lyon", To: "Paris", DistanceMeters: 465000, DurationSeconds: 16200}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/distance?from=Lyon&to=Paris", nil, "")

		var response resdto.DistanceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(465000, response.DistanceMeters)
	})

	s.Run("error: 400 Bad Request when an address is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/distance?from=Lyon", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "from and to are required")
	})

	s.Run("error: maps provider errors to proper statuses", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "route not found", err: distance.ErrRouteNotFound, expectedStatus: http.StatusNotFound},
			{name: "upstream failure", err: distance.ErrUpstreamFailure, expectedStatus: http.StatusServiceUnavailable, expectedMsg: "Service temporarily unavailable"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockDistance.EXPECT().Between(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/distance?from=a&to=b", nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *SchedulingHandlerTestSuite) TestMaintenance() {
	s.Run("success: sweep reports completed ids", func() {
		id := uuid.New()
		ranAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
		s.mockSweep.EXPECT().RunCompletionSweep(gomock.Any()).
			Return(&commands.SweepResult{Completed: 1, IDs: []uuid.UUID{id}, RanAt: ranAt}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/internal/sweeps/completion", nil, "")

		var response resdto.SweepResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(1, response.Completed)
		s.Equal([]string{id.String()}, response.IDs)
		s.Equal("2025-03-10T12:00:00Z", response.RanAt)
	})

	s.Run("success: ensure relationship", func() {
		proID, ownerID := uuid.New(), uuid.New()
		s.mockEnsure.EXPECT().Ensure(gomock.Any(), proID, ownerID).
			Return(&commands.EnsureRelationshipResult{ProfessionalID: proID, OwnerID: ownerID, Created: true}, nil).Times(1)

		body := map[string]any{"professionalId": proID.String(), "ownerId": ownerID.String()}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/internal/relationships", body, "")

		var response resdto.EnsureRelationshipResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Created)
	})

	s.Run("error: 400 Bad Request when a party is missing", func() {
		body := map[string]any{"professionalId": uuid.New().String()}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/internal/relationships", body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 404 Not Found for an unknown party", func() {
		s.mockEnsure.EXPECT().Ensure(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrPartyNotFound).Times(1)

		body := map[string]any{"professionalId": uuid.New().String(), "ownerId": uuid.New().String()}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/internal/relationships", body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
