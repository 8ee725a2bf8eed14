/**
 * @description
 * Ledger and statement endpoints: transaction listing with pagination and
 * account scoping, statement listing, and the statement PDF view.
 */
package rizeclient

import (
	"context"
	"net/url"
	"strconv"

	"github.com/RizeFinance/onboarding-service/internal/domain"
)

// ListTransactionsParams controls pagination and scoping of a transaction
// listing. Zero values are omitted from the query.
type ListTransactionsParams struct {
	Limit               int
	Offset              int
	SyntheticAccountUID string
}

// ListTransactions returns ledger entries, newest first.
func (c *Client) ListTransactions(ctx context.Context, accessToken string, params ListTransactionsParams) ([]domain.Transaction, error) {
	query := url.Values{}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		query.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.SyntheticAccountUID != "" {
		query.Set("synthetic_account_uid", params.SyntheticAccountUID)
	}
	path := "/transactions"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var envelope listEnvelope[domain.Transaction]
	if err := c.do(ctx, "GET", path, accessToken, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// ListStatements returns the customer's periodic account documents.
func (c *Client) ListStatements(ctx context.Context, accessToken string) ([]domain.Statement, error) {
	var envelope listEnvelope[domain.Statement]
	if err := c.do(ctx, "GET", "/documents", accessToken, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// ViewStatement fetches the rendered statement (PDF) and its content type.
func (c *Client) ViewStatement(ctx context.Context, accessToken, uid string) ([]byte, string, error) {
	return c.doRaw(ctx, "GET", "/documents/"+url.PathEscape(uid)+"/view", accessToken)
}
