package entity

type Room struct {
	Base
	Name      string `db:"name"`
	NbRows    int    `db:"nb_rows"`
	NbColumns int    `db:"nb_columns"`
}
