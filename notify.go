package stitchboard

// Notice is a short status message raised by a board operation. The wording
// returned by String is a default; hosts may present their own text.
type Notice uint8

const (
	NoticeStitched        Notice = iota + 1 // a full stitch layout was applied
	NoticeSwapped                           // a repeated stitch swapped the pair
	NoticeSelectMore                        // stitch needs at least two selected pictures
	NoticeDeleted                           // pictures were deleted
	NoticeUndone                            // an undo snapshot was restored
	NoticeNothingToUndo                     // the undo stack is empty
	NoticeNothingToExport                   // export was requested on an empty board
	NoticeExported                          // export produced an image
	NoticeDeformOn                          // deform mode enabled
	NoticeDeformOff                         // deform mode disabled
	NoticeLoaded                            // a picture was added
	NoticeLoadFailed                        // an input could not be decoded
)

func (n Notice) String() string {
	switch n {
	case NoticeStitched:
		return "stitched (stitch again to swap)"
	case NoticeSwapped:
		return "swapped"
	case NoticeSelectMore:
		return "select at least 2 images (shift+click)"
	case NoticeDeleted:
		return "deleted"
	case NoticeUndone:
		return "undone"
	case NoticeNothingToUndo:
		return "nothing to undo"
	case NoticeNothingToExport:
		return "no images to export"
	case NoticeExported:
		return "exported"
	case NoticeDeformOn:
		return "deform mode: drag control points to warp"
	case NoticeDeformOff:
		return "resize mode: drag corner handles to scale"
	case NoticeLoaded:
		return "loaded"
	case NoticeLoadFailed:
		return "could not load image"
	default:
		return ""
	}
}

// Notifier receives notices from a Board. Implementations are called
// synchronously from the operation that raised the notice.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notice)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notice) { f(n) }
