package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fabshop/quoting/pkg/domain/entities"
	"github.com/fabshop/quoting/pkg/infrastructure/repositories/settings"
)

// SaveDocument replaces a settings document wholesale, bumping its version.
// This matches the admin screens' save semantics: no partial edits, the
// whole table is written every time.
func (s *Store) SaveDocument(ctx context.Context, name string, body []byte) (entities.DocumentInfo, error) {
	modified := time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings_documents (name, version, modified_at, body)
		VALUES (?, 1, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			version = version + 1,
			modified_at = excluded.modified_at,
			body = excluded.body
	`, name, modified.Format(time.RFC3339), string(body))
	if err != nil {
		return entities.DocumentInfo{}, fmt.Errorf("failed to save document %s: %w", name, err)
	}

	return s.documentInfo(ctx, name)
}

func (s *Store) documentInfo(ctx context.Context, name string) (entities.DocumentInfo, error) {
	var info entities.DocumentInfo
	var modifiedAt string

	row := s.db.QueryRowContext(ctx,
		`SELECT name, version, modified_at FROM settings_documents WHERE name = ?`, name)
	if err := row.Scan(&info.Name, &info.Version, &modifiedAt); err != nil {
		return info, fmt.Errorf("failed to read document %s: %w", name, err)
	}

	modified, err := time.Parse(time.RFC3339, modifiedAt)
	if err != nil {
		return info, fmt.Errorf("document %s has invalid modified_at %q", name, modifiedAt)
	}
	info.ModifiedAt = modified

	return info, nil
}

// GetDocument returns a document's body and version metadata
func (s *Store) GetDocument(ctx context.Context, name string) ([]byte, entities.DocumentInfo, error) {
	var body string
	var info entities.DocumentInfo
	var modifiedAt string

	row := s.db.QueryRowContext(ctx,
		`SELECT name, version, modified_at, body FROM settings_documents WHERE name = ?`, name)
	if err := row.Scan(&info.Name, &info.Version, &modifiedAt, &body); err != nil {
		if err == sql.ErrNoRows {
			return nil, info, fmt.Errorf("settings document not found: %s", name)
		}
		return nil, info, fmt.Errorf("failed to read document %s: %w", name, err)
	}

	modified, err := time.Parse(time.RFC3339, modifiedAt)
	if err != nil {
		return nil, info, fmt.Errorf("document %s has invalid modified_at %q", name, modifiedAt)
	}
	info.ModifiedAt = modified

	return []byte(body), info, nil
}

// ListDocuments returns the version metadata of every stored document
func (s *Store) ListDocuments(ctx context.Context) ([]entities.DocumentInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, version, modified_at FROM settings_documents ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var infos []entities.DocumentInfo
	for rows.Next() {
		var info entities.DocumentInfo
		var modifiedAt string
		if err := rows.Scan(&info.Name, &info.Version, &modifiedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		modified, err := time.Parse(time.RFC3339, modifiedAt)
		if err != nil {
			return nil, fmt.Errorf("document %s has invalid modified_at %q", info.Name, modifiedAt)
		}
		info.ModifiedAt = modified
		infos = append(infos, info)
	}

	return infos, rows.Err()
}

// LoadRuleSet assembles a rule set snapshot from the stored documents.
// The snapshot is independent of the store; later saves do not affect it.
func (s *Store) LoadRuleSet(ctx context.Context) (*entities.RuleSet, error) {
	rules := &entities.RuleSet{
		Documents: make(map[string]entities.DocumentInfo),
	}

	body, info, err := s.GetDocument(ctx, entities.DocLaborMinimums)
	if err != nil {
		return nil, err
	}
	if rules.LaborMinimums, _, err = settings.ParseLaborMinimums(body); err != nil {
		return nil, err
	}
	rules.Documents[info.Name] = info

	if body, info, err = s.GetDocument(ctx, entities.DocRollLimits); err != nil {
		return nil, err
	}
	if rules.RollLimits, _, err = settings.ParseRollLimits(body); err != nil {
		return nil, err
	}
	rules.Documents[info.Name] = info

	if body, info, err = s.GetDocument(ctx, entities.DocMandrelDies); err != nil {
		return nil, err
	}
	if rules.MandrelDies, _, err = settings.ParseMandrelDies(body); err != nil {
		return nil, err
	}
	rules.Documents[info.Name] = info

	if body, info, err = s.GetDocument(ctx, entities.DocMaterialGrades); err != nil {
		return nil, err
	}
	if rules.MaterialGrades, _, err = settings.ParseMaterialGrades(body); err != nil {
		return nil, err
	}
	rules.Documents[info.Name] = info

	if body, info, err = s.GetDocument(ctx, entities.DocWeldRates); err != nil {
		return nil, err
	}
	if rules.WeldRates, _, err = settings.ParseWeldRates(body); err != nil {
		return nil, err
	}
	rules.Documents[info.Name] = info

	if body, info, err = s.GetDocument(ctx, entities.DocTaxSettings); err != nil {
		return nil, err
	}
	if rules.Tax, _, err = settings.ParseTaxSettings(body); err != nil {
		return nil, err
	}
	rules.Documents[info.Name] = info

	return rules, nil
}

// ImportFromDir seeds the store from a directory of JSON settings
// documents, saving each one as a new version.
func (s *Store) ImportFromDir(ctx context.Context, dir string) error {
	names := []string{
		entities.DocLaborMinimums,
		entities.DocRollLimits,
		entities.DocMandrelDies,
		entities.DocMaterialGrades,
		entities.DocWeldRates,
		entities.DocTaxSettings,
	}

	for _, name := range names {
		body, err := readSettingsFile(dir, name)
		if err != nil {
			return err
		}
		if _, err := s.SaveDocument(ctx, name, body); err != nil {
			return err
		}
	}

	return nil
}

func readSettingsFile(dir, name string) ([]byte, error) {
	path := filepath.Join(dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s document %s: %w", name, path, err)
	}
	return data, nil
}
