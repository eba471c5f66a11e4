package db

// V1SchemaSQL exposes the legacy fixture to the db_test package.
const V1SchemaSQL = v1SchemaSQL
