package leads

import (
	"database/sql"
	"encoding/json"

	"github.com/huntly/leadsearch/internal/domain"
)

const selectLeads = `SELECT
	id, user_id, company, contact, email, phone, website,
	industry, location, revenue, employees, description, keywords,
	score, status, priority, indexed_at, last_contact, created_at, updated_at
FROM leads`

// scanner abstracts *sql.Row and *sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanLead(s scanner) (domain.Lead, error) {
	var (
		lead        domain.Lead
		userID      sql.NullInt64
		contact     sql.NullString
		email       sql.NullString
		phone       sql.NullString
		website     sql.NullString
		industry    sql.NullString
		location    sql.NullString
		revenue     sql.NullString
		employees   sql.NullString
		description sql.NullString
		keywords    sql.NullString
		status      sql.NullString
		priority    sql.NullString
		indexedAt   sql.NullTime
		lastContact sql.NullTime
	)

	err := s.Scan(
		&lead.ID, &userID, &lead.Company, &contact, &email, &phone, &website,
		&industry, &location, &revenue, &employees, &description, &keywords,
		&lead.Score, &status, &priority, &indexedAt, &lastContact,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return domain.Lead{}, err
	}

	lead.UserID = userID.Int64
	lead.Contact = contact.String
	lead.Email = email.String
	lead.Phone = phone.String
	lead.Website = website.String
	lead.Industry = industry.String
	lead.Location = location.String
	lead.Revenue = revenue.String
	lead.Employees = employees.String
	lead.Description = description.String
	lead.Status = status.String
	lead.Priority = priority.String
	lead.Keywords = decodeKeywords(keywords.String)
	if indexedAt.Valid {
		t := indexedAt.Time
		lead.IndexedAt = &t
	}
	if lastContact.Valid {
		t := lastContact.Time
		lead.LastContact = &t
	}

	return lead, nil
}

func scanLeads(rows *sql.Rows) ([]domain.Lead, error) {
	var out []domain.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, lead)
	}
	return out, rows.Err()
}

// encodeKeywords stores the keyword list as a JSON text column.
func encodeKeywords(keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}
	data, err := json.Marshal(keywords)
	if err != nil {
		return ""
	}
	return string(data)
}

func decodeKeywords(raw string) []string {
	if raw == "" {
		return nil
	}
	var keywords []string
	if err := json.Unmarshal([]byte(raw), &keywords); err != nil {
		return nil
	}
	return keywords
}
