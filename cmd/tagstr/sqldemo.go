package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/tagstr/tagstr/sqltag"
	"github.com/tagstr/tagstr/taglib"
)

var sqlDemoCmd = &cobra.Command{
	Use:   "sql-demo",
	Short: "Run the SQL statement builder against an in-memory database",
	Long: `Builds parameterized statements with the sql tag, executes them against
an in-memory SQLite database, and prints the statements and results.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := sql.Open("sqlite", ":memory:")
		if err != nil {
			return err
		}
		defer db.Close()
		ctx := cmd.Context()

		table, err := sqltag.Ident("lang")
		if err != nil {
			return err
		}
		create, err := sqltag.SQL(
			taglib.Lit("create table "),
			taglib.Val("table", table),
			taglib.Lit(" (name text, year integer)"),
		)
		if err != nil {
			return err
		}
		if _, err := create.Exec(ctx, db); err != nil {
			return err
		}

		for _, row := range []struct {
			name string
			year int
		}{{"C", 1972}, {"Fortran", 1957}, {"Python", 1991}, {"Go", 2009}} {
			insert, err := sqltag.SQL(
				taglib.Lit("insert into "),
				taglib.Val("table", table),
				taglib.Lit(" (name, year) values ("),
				taglib.Val("name", row.name),
				taglib.Lit(", "),
				taglib.Val("year", row.year),
				taglib.Lit(")"),
			)
			if err != nil {
				return err
			}
			if _, err := insert.Exec(ctx, db); err != nil {
				return err
			}
		}

		cutoff := 1980
		cond, err := sqltag.SQL(
			taglib.Lit("year < "),
			taglib.Val("cutoff", cutoff),
		)
		if err != nil {
			return err
		}
		query, err := sqltag.SQL(
			taglib.Lit("select name, year from "),
			taglib.Val("table", table),
			taglib.Lit(" where "),
			taglib.Val("cond", cond),
			taglib.Lit(" order by year"),
		)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%v\n", query.SQL, query.Bindings)

		rows, err := query.Query(ctx, db)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var name string
			var year int
			if err := rows.Scan(&name, &year); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", name, year)
		}
		return rows.Err()
	},
}
