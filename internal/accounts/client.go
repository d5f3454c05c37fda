// Package accounts is the client of the Accounts facade, which owns users, compliance
// schemes, scheme membership, notifications and delegated person nominations.
package accounts

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"schemereg/internal/platform/httpclient"
	id "schemereg/pkg/domain"
)

const apiName = "accounts"

// Client calls the Accounts facade.
type Client struct {
	http *httpclient.Client
}

// New creates an accounts client.
func New(baseURL string, timeout time.Duration, opts ...httpclient.Option) *Client {
	return &Client{http: httpclient.New(apiName, baseURL, timeout, opts...)}
}

// GetUserAccount returns the signed-in user, or nil when the facade has no account.
func (c *Client) GetUserAccount(ctx context.Context) (*UserAccount, error) {
	var u UserAccount
	found, err := c.http.GetJSON(ctx, "get user account", "/api/user-accounts", &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

// GetProducerComplianceScheme returns the scheme a producer has selected, or nil.
func (c *Client) GetProducerComplianceScheme(ctx context.Context, producerID id.OrganisationID) (*ProducerComplianceScheme, error) {
	var pcs ProducerComplianceScheme
	found, err := c.http.GetJSON(ctx, "get producer compliance scheme",
		"/api/compliance-schemes/get-for-producer?producerOrganisationId="+producerID.String(), &pcs)
	if err != nil || !found {
		return nil, err
	}
	return &pcs, nil
}

// GetOperatorComplianceSchemes returns the schemes run by an operator.
func (c *Client) GetOperatorComplianceSchemes(ctx context.Context, operatorID id.OrganisationID) ([]ComplianceScheme, error) {
	var schemes []ComplianceScheme
	if _, err := c.http.GetJSON(ctx, "get operator compliance schemes",
		"/api/compliance-schemes/get-for-operator?operatorOrganisationId="+operatorID.String(), &schemes); err != nil {
		return nil, err
	}
	return schemes, nil
}

// GetAllComplianceSchemes returns every scheme a producer may select.
func (c *Client) GetAllComplianceSchemes(ctx context.Context) ([]ComplianceScheme, error) {
	var schemes []ComplianceScheme
	if _, err := c.http.GetJSON(ctx, "get compliance schemes", "/api/compliance-schemes", &schemes); err != nil {
		return nil, err
	}
	return schemes, nil
}

// GetComplianceSchemeSummary returns the summary of a scheme, or nil.
func (c *Client) GetComplianceSchemeSummary(ctx context.Context, orgID id.OrganisationID, csID id.ComplianceSchemeID) (*ComplianceSchemeSummary, error) {
	var summary ComplianceSchemeSummary
	found, err := c.http.GetJSON(ctx, "get compliance scheme summary",
		"/api/compliance-schemes/"+csID.String()+"/summary?organisationId="+orgID.String(), &summary)
	if err != nil || !found {
		return nil, err
	}
	return &summary, nil
}

// GetSchemeMembers returns one page of a scheme's members.
func (c *Client) GetSchemeMembers(ctx context.Context, orgID id.OrganisationID, csID id.ComplianceSchemeID, q SchemeMembersQuery) (*SchemeMembers, error) {
	v := url.Values{}
	if q.Search != "" {
		v.Set("query", q.Search)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	var members SchemeMembers
	found, err := c.http.GetJSON(ctx, "get scheme members",
		"/api/compliance-schemes/"+orgID.String()+"/schemes/"+csID.String()+"/scheme-members?"+v.Encode(), &members)
	if err != nil || !found {
		return nil, err
	}
	return &members, nil
}

// GetSchemeMemberDetails returns one member, or nil.
func (c *Client) GetSchemeMemberDetails(ctx context.Context, orgID id.OrganisationID, selectedSchemeID id.SelectedSchemeID) (*SchemeMemberDetails, error) {
	var details SchemeMemberDetails
	found, err := c.http.GetJSON(ctx, "get scheme member details",
		"/api/compliance-schemes/"+orgID.String()+"/scheme-members/"+selectedSchemeID.String(), &details)
	if err != nil || !found {
		return nil, err
	}
	return &details, nil
}

// GetReasonsForRemoval lists the reasons a member can be removed for.
func (c *Client) GetReasonsForRemoval(ctx context.Context) ([]ReasonForRemoval, error) {
	var reasons []ReasonForRemoval
	if _, err := c.http.GetJSON(ctx, "get reasons for removal", "/api/compliance-schemes/member-removal-reasons", &reasons); err != nil {
		return nil, err
	}
	return reasons, nil
}

type removeMemberRequest struct {
	Code       string `json:"code"`
	TellUsMore string `json:"tellUsMore,omitempty"`
}

// RemoveSchemeMember removes a member from the operator's scheme.
func (c *Client) RemoveSchemeMember(ctx context.Context, orgID id.OrganisationID, selectedSchemeID id.SelectedSchemeID, reasonCode, tellUsMore string) (*RemovedMember, error) {
	var removed RemovedMember
	err := c.http.SendJSON(ctx, "remove scheme member", http.MethodPost,
		"/api/compliance-schemes/"+orgID.String()+"/scheme-members/"+selectedSchemeID.String()+"/removed",
		removeMemberRequest{Code: reasonCode, TellUsMore: tellUsMore}, &removed)
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

type selectRequest struct {
	ComplianceSchemeID     id.ComplianceSchemeID `json:"complianceSchemeId"`
	ProducerOrganisationID id.OrganisationID     `json:"producerOrganisationId"`
}

// SelectedScheme is the link created when a producer selects a scheme.
type SelectedScheme struct {
	ID id.SelectedSchemeID `json:"id"`
}

// SelectComplianceScheme links a producer without a scheme to csID.
func (c *Client) SelectComplianceScheme(ctx context.Context, producerID id.OrganisationID, csID id.ComplianceSchemeID) (*SelectedScheme, error) {
	var selected SelectedScheme
	err := c.http.SendJSON(ctx, "select compliance scheme", http.MethodPost, "/api/compliance-schemes/select",
		selectRequest{ComplianceSchemeID: csID, ProducerOrganisationID: producerID}, &selected)
	if err != nil {
		return nil, err
	}
	return &selected, nil
}

type updateRequest struct {
	SelectedSchemeID       id.SelectedSchemeID   `json:"selectedSchemeId"`
	ComplianceSchemeID     id.ComplianceSchemeID `json:"complianceSchemeId"`
	ProducerOrganisationID id.OrganisationID     `json:"producerOrganisationId"`
}

// UpdateComplianceScheme moves a producer from its current scheme to csID.
func (c *Client) UpdateComplianceScheme(ctx context.Context, producerID id.OrganisationID, current id.SelectedSchemeID, csID id.ComplianceSchemeID) (*SelectedScheme, error) {
	var selected SelectedScheme
	err := c.http.SendJSON(ctx, "update compliance scheme", http.MethodPost, "/api/compliance-schemes/update",
		updateRequest{SelectedSchemeID: current, ComplianceSchemeID: csID, ProducerOrganisationID: producerID}, &selected)
	if err != nil {
		return nil, err
	}
	return &selected, nil
}

type stopRequest struct {
	SelectedSchemeID id.SelectedSchemeID `json:"selectedSchemeId"`
	OrganisationID   id.OrganisationID   `json:"organisationId"`
}

// StopComplianceScheme ends a producer's membership of its scheme.
func (c *Client) StopComplianceScheme(ctx context.Context, producerID id.OrganisationID, selectedSchemeID id.SelectedSchemeID) error {
	return c.http.SendJSON(ctx, "stop compliance scheme", http.MethodPost, "/api/compliance-schemes/remove",
		stopRequest{SelectedSchemeID: selectedSchemeID, OrganisationID: producerID}, nil)
}

type notificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

// GetNotifications returns the user's notifications for an organisation.
func (c *Client) GetNotifications(ctx context.Context, orgID id.OrganisationID) ([]Notification, error) {
	var resp notificationsResponse
	if _, err := c.http.GetJSON(ctx, "get notifications",
		"/api/notifications?serviceKey=Packaging&organisationId="+orgID.String(), &resp); err != nil {
		return nil, err
	}
	return resp.Notifications, nil
}

// GetNominationRequest returns a pending nomination, or nil.
func (c *Client) GetNominationRequest(ctx context.Context, enrolmentID id.EnrolmentID) (*NominationRequest, error) {
	var req NominationRequest
	found, err := c.http.GetJSON(ctx, "get nomination request", "/api/enrolments/"+enrolmentID.String()+"/nomination", &req)
	if err != nil || !found {
		return nil, err
	}
	return &req, nil
}

// AcceptNomination accepts a nomination on behalf of orgID.
func (c *Client) AcceptNomination(ctx context.Context, orgID id.OrganisationID, enrolmentID id.EnrolmentID, req AcceptNominationRequest) error {
	return c.http.SendJSON(ctx, "accept nomination", http.MethodPut,
		"/api/enrolments/"+enrolmentID.String()+"/accept-nomination?organisationId="+orgID.String(), req, nil)
}
