package model

import "fmt"

// formatSAN renders a committed move in standard algebraic notation. Pieces that
// could have reached the same square are not disambiguated.
func formatSAN(r *MoveResult) string {
	switch r.Special {
	case CastleKingside:
		return "O-O"
	case CastleQueenside:
		return "O-O-O"
	}
	pieceNotationPrefix := r.Piece.Kind.getPieceNotation()
	pawnFileSpecifier := ""
	pieceNotationCapture := ""
	if r.Captured != nil {
		pieceNotationCapture = "x"
		if r.Piece.Kind == Pawn {
			pawnFileSpecifier = r.From.getFileNotation()
		}
	}
	promotion := ""
	if r.Promoted != nil {
		promotion = "=" + r.Promoted.Kind.getPieceNotation()
	}
	return fmt.Sprintf("%s%s%s%s%s", pieceNotationPrefix, pawnFileSpecifier, pieceNotationCapture, r.To.getSquareNotation(), promotion)
}
