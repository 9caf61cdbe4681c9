package domain

import "time"

// Board is a fixed Size x Size grid of task cells. Once published it is
// immutable; rooms reference it but never mutate it.
type Board struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	CreatorID   uint        `gorm:"index;not null" json:"creator_id"`
	Title       string      `gorm:"not null" json:"title"`
	Size        int         `gorm:"not null" json:"size"`
	IsPublished bool        `gorm:"not null;default:false" json:"is_published"`
	Cells       []BoardCell `gorm:"foreignKey:BoardID" json:"cells,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// BoardCell is a single task on a board, addressed by (row, col).
type BoardCell struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BoardID  uint   `gorm:"index;not null;uniqueIndex:uniq_board_position,priority:1" json:"board_id"`
	RowIndex int    `gorm:"not null;uniqueIndex:uniq_board_position,priority:2" json:"row_index"`
	ColIndex int    `gorm:"not null;uniqueIndex:uniq_board_position,priority:3" json:"col_index"`
	Task     string `gorm:"type:text;not null" json:"task"`
}
