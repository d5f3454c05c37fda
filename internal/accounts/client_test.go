package accounts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"schemereg/internal/platform/httpclient"
	id "schemereg/pkg/domain"
)

type ClientSuite struct {
	suite.Suite
	mux    *http.ServeMux
	server *httptest.Server
	client *Client
	org    id.OrganisationID
	cs     id.ComplianceSchemeID
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)
	s.client = New(s.server.URL, 5*time.Second, httpclient.WithTokenSource(httpclient.StaticToken("facade")))
	s.org = id.OrganisationID(uuid.New())
	s.cs = id.ComplianceSchemeID(uuid.New())
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestGetProducerComplianceScheme() {
	missing := false
	s.mux.HandleFunc("GET /api/compliance-schemes/get-for-producer", func(w http.ResponseWriter, r *http.Request) {
		if missing {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		s.Equal(s.org.String(), r.URL.Query().Get("producerOrganisationId"))
		s.Equal("Bearer facade", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"selectedSchemeId":     uuid.NewString(),
			"complianceSchemeId":   s.cs.String(),
			"complianceSchemeName": "Acme Compliance",
		})
	})

	s.Run("returns the selected scheme", func() {
		pcs, err := s.client.GetProducerComplianceScheme(context.Background(), s.org)
		s.Require().NoError(err)
		s.Require().NotNil(pcs)
		s.Equal(s.cs, pcs.ComplianceSchemeID)
		s.Equal("Acme Compliance", pcs.ComplianceSchemeName)
	})

	s.Run("404 means no scheme", func() {
		missing = true
		pcs, err := s.client.GetProducerComplianceScheme(context.Background(), s.org)
		s.Require().NoError(err)
		s.Nil(pcs)
	})
}

func (s *ClientSuite) TestGetComplianceSchemeSummary() {
	s.mux.HandleFunc("GET /api/compliance-schemes/{cs}/summary", func(w http.ResponseWriter, r *http.Request) {
		s.Equal(s.cs.String(), r.PathValue("cs"))
		s.Equal(s.org.String(), r.URL.Query().Get("organisationId"))
		_, _ = w.Write([]byte(`{"name":"Acme Compliance","memberCount":42}`))
	})

	summary, err := s.client.GetComplianceSchemeSummary(context.Background(), s.org, s.cs)
	s.Require().NoError(err)
	s.Equal(42, summary.MemberCount)
}

func (s *ClientSuite) TestGetSchemeMembers() {
	s.mux.HandleFunc("GET /api/compliance-schemes/{org}/schemes/{cs}/scheme-members", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("acme", r.URL.Query().Get("query"))
		s.Equal("2", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"items":[{"organisationName":"Widgets Ltd","organisationNumber":"100 001"}],"totalItems":1}`))
	})

	members, err := s.client.GetSchemeMembers(context.Background(), s.org, s.cs, SchemeMembersQuery{Search: "acme", Page: 2})
	s.Require().NoError(err)
	s.Require().Len(members.Items, 1)
	s.Equal("Widgets Ltd", members.Items[0].OrganisationName)
}

func (s *ClientSuite) TestRemoveSchemeMember() {
	sel := id.SelectedSchemeID(uuid.New())
	s.mux.HandleFunc("POST /api/compliance-schemes/{org}/scheme-members/{sel}/removed", func(w http.ResponseWriter, r *http.Request) {
		s.Equal(sel.String(), r.PathValue("sel"))
		var body map[string]string
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
		s.Equal("D", body["code"])
		s.Equal("merged with another producer", body["tellUsMore"])
		_, _ = w.Write([]byte(`{"organisationName":"Widgets Ltd"}`))
	})

	removed, err := s.client.RemoveSchemeMember(context.Background(), s.org, sel, "D", "merged with another producer")
	s.Require().NoError(err)
	s.Equal("Widgets Ltd", removed.OrganisationName)
}

func (s *ClientSuite) TestStopComplianceSchemeFailure() {
	s.mux.HandleFunc("POST /api/compliance-schemes/remove", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := s.client.StopComplianceScheme(context.Background(), s.org, id.SelectedSchemeID(uuid.New()))
	s.True(httpclient.IsStatus(err, http.StatusInternalServerError))
}

func (s *ClientSuite) TestNotificationsAndNomination() {
	enrolment := id.EnrolmentID(uuid.New())
	s.mux.HandleFunc("GET /api/notifications", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"notifications":[{"type":"DelegatedPersonNomination","data":{"EnrolmentId":"` + enrolment.String() + `"}}]}`))
	})
	s.mux.HandleFunc("PUT /api/enrolments/{id}/accept-nomination", func(w http.ResponseWriter, r *http.Request) {
		s.Equal(enrolment.String(), r.PathValue("id"))
		w.WriteHeader(http.StatusOK)
	})

	notes, err := s.client.GetNotifications(context.Background(), s.org)
	s.Require().NoError(err)
	s.Require().Len(notes, 1)
	s.Equal(NotificationDelegatedPersonNomination, notes[0].Type)
	s.Equal(enrolment.String(), notes[0].Data["EnrolmentId"])

	s.Require().NoError(s.client.AcceptNomination(context.Background(), s.org, enrolment,
		AcceptNominationRequest{Telephone: "01234 567890", NomineeDeclaration: "Ada Lovelace"}))
}
