package psqlbuilder

import "github.com/Masterminds/squirrel"

// Builder построитель запросов с плейсхолдерами под конкретный драйвер
type Builder struct {
	sb squirrel.StatementBuilderType
}

// ForDriver возвращает построитель для драйвера database/sql
// postgres использует $1, остальные (sqlite3) используют ?
func ForDriver(driver string) Builder {
	if driver == "postgres" {
		return Builder{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
	}
	return Builder{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)}
}

func (b Builder) Select(columns ...string) squirrel.SelectBuilder {
	return b.sb.Select(columns...)
}

func (b Builder) Insert(into string) squirrel.InsertBuilder {
	return b.sb.Insert(into)
}

func (b Builder) Update(table string) squirrel.UpdateBuilder {
	return b.sb.Update(table)
}

func (b Builder) Delete(from string) squirrel.DeleteBuilder {
	return b.sb.Delete(from)
}
