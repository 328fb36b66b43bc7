package mapping

import "database/sql"

func ValueToSQLNullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func SQLNullStringToValue(value sql.NullString) string {
	if !value.Valid {
		return ""
	}
	return value.String
}

func PointerToSQLNullInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

func SQLNullInt64ToPointer(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	v := value.Int64
	return &v
}

func UintPointerToSQLNullInt64(value *uint) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

func SQLNullInt64ToUintPointer(value sql.NullInt64) *uint {
	if !value.Valid {
		return nil
	}
	v := uint(value.Int64)
	return &v
}
