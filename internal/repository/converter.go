package repository

import "github.com/futig/question-generator/internal/entity"

// toQuestionRows maps a raw table onto question rows by column name
func toQuestionRows(t *rawTable) ([]entity.QuestionRow, error) {
	idx := make(map[string]int, len(entity.QuestionColumns))
	for _, name := range entity.QuestionColumns {
		i, err := t.column(name)
		if err != nil {
			return nil, err
		}
		idx[name] = i
	}

	rows := make([]entity.QuestionRow, 0, len(t.records))
	for _, rec := range t.records {
		rows = append(rows, entity.QuestionRow{
			Domain:        rec[idx[entity.ColumnDomain]],
			Stakeholder:   rec[idx[entity.ColumnStakeholder]],
			MetricArea:    rec[idx[entity.ColumnMetricArea]],
			QuestionType:  rec[idx[entity.ColumnQuestionType]],
			Question:      rec[idx[entity.ColumnQuestion]],
			AnswerOptions: rec[idx[entity.ColumnAnswerOptions]],
		})
	}

	return rows, nil
}

func toPersonalTable(t *rawTable) *entity.PersonalTable {
	return &entity.PersonalTable{
		Header: t.header,
		Rows:   t.records,
	}
}

func cloneRows(rows []entity.QuestionRow) []entity.QuestionRow {
	out := make([]entity.QuestionRow, len(rows))
	copy(out, rows)
	return out
}

func clonePersonal(p *entity.PersonalTable) *entity.PersonalTable {
	rows := make([][]string, len(p.Rows))
	for i, r := range p.Rows {
		rows[i] = append([]string{}, r...)
	}
	return &entity.PersonalTable{
		Header: append([]string{}, p.Header...),
		Rows:   rows,
	}
}
