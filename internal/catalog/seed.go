// Package catalog holds the built-in manga dataset and the overlay
// loader that lets operators extend it at runtime.
package catalog

import (
	"context"
	"fmt"

	"github.com/mangaportal/mangaportal-server/internal/domain"
)

// Cover image URLs for the built-in dataset.
const (
	attackTitanCover = "https://m.media-amazon.com/images/M/MV5BZjliODY5MzQtMmViZC00MTZmLWFhMWMtMjMwM2I3OGY1MTRiXkEyXkFqcGc@._V1_FMjpg_UX1000_.jpg"
	onePieceCover    = "https://m.media-amazon.com/images/M/MV5BMTNjNGU4NTUtYmVjMy00YjRiLTkxMWUtNzZkMDNiYjZhNmViXkEyXkFqcGc@._V1_.jpg"
	soloLevelingCover = "https://www.bdfugue.com/media/catalog/product/cache/0d950bd4d3aaddc02a824ea154d9c41e/9/7/9782382882559_1_75.webp"
	demonSlayerCover = "https://casablanca.megarama.ma/public/films/affiches/342_456/0598p10250016575ce74.jpg"
	blueLockCover    = "https://images.epagine.fr/254/9782811650254_1_75.jpg"
	narutoCover      = "https://m.media-amazon.com/images/M/MV5BNTk3MDA1ZjAtNTRhYS00YzNiLTgwOGEtYWRmYTQ3NjA0NTAwXkEyXkFqcGc@._V1_FMjpg_UX1000_.jpg"
	hunterCover      = "https://www.nautiljon.com/images/anime/00/98/hunter_x_hunter_2011_2089.webp"
	bleachCover      = "https://www.nautiljon.com/images/anime/00/61/bleach_sennen_kessen-hen_9416.webp"
	dbzCover         = "https://i.redd.it/0ro9ciopz7ra1.jpg"
	towerCover       = "https://upload.wikimedia.org/wikipedia/en/a/a5/Tower_of_God_season_2_poster.jpg"
	sakamotoCover    = "https://m.arabseed.show/wp-content/uploads/2025/07/Sakamoto-Days-2-scaled.webp"
)

// Default returns the built-in catalog. Chapters are listed newest
// first; readers navigate towards lower indexes for newer chapters.
func Default() []*domain.Manga {
	return []*domain.Manga{
		{
			ID:          "attack-titan",
			Title:       "هجوم العمالقة",
			TitleEn:     "Attack on Titan",
			Author:      "هاجيمي إيساياما",
			Status:      domain.StatusCompleted,
			Genres:      []string{"أكشن", "دراما", "خيال"},
			Rating:      9.0,
			Description: "في عالم حيث تهدد العمالقة الإنسانية، ينضم إيرين ييغر إلى فيلق الاستطلاع للقتال ضد هذه الوحوش الغامضة واكتشاف الحقيقة وراء وجودها.",
			Cover:       attackTitanCover,
			Type:        domain.TypeManga,
			Chapters: []domain.Chapter{
				{Number: 139, Title: "نحو الشجرة على ذلك التل", Pages: 45},
				{Number: 138, Title: "زمن طويل", Pages: 43},
				{Number: 137, Title: "العمالقة", Pages: 41},
				{Number: 136, Title: "عبر السماء", Pages: 39},
			},
		},
		{
			ID:          "one-piece",
			Title:       "ون بيس",
			TitleEn:     "One Piece",
			Author:      "إييتشيرو أودا",
			Status:      domain.StatusOngoing,
			Genres:      []string{"مغامرة", "كوميدي", "أكشن"},
			Rating:      9.2,
			Description: "مونكي دي لوفي، شاب ذو قوى مطاطية، يسافر مع طاقمه من القراصنة بحثاً عن الكنز الأسطوري المعروف باسم \"ون بيس\".",
			Cover:       onePieceCover,
			Type:        domain.TypeManga,
			Chapters: []domain.Chapter{
				{Number: 1098, Title: "ولد في هذا العالم", Pages: 17},
				{Number: 1097, Title: "جيني", Pages: 19},
				{Number: 1096, Title: "كوماتشي", Pages: 18},
				{Number: 1095, Title: "عالم صالح للعيش", Pages: 16},
			},
		},
		{
			ID:          "solo-leveling",
			Title:       "سولو ليفلنج",
			TitleEn:     "Solo Leveling",
			Author:      "تشوغونغ",
			Status:      domain.StatusCompleted,
			Genres:      []string{"أكشن", "خيال", "مغامرة"},
			Rating:      8.9,
			Description: "في عالم حيث ظهرت بوابات تحتوي على وحوش، يصبح سونغ جين وو، أضعف الصيادين، أقوى محارب بمفرده.",
			Cover:       soloLevelingCover,
			Type:        domain.TypeManhwa,
			Chapters: []domain.Chapter{
				{Number: 179, Title: "النهاية", Pages: 23},
				{Number: 178, Title: "المعركة الأخيرة", Pages: 21},
				{Number: 177, Title: "الملك الظل", Pages: 19},
				{Number: 176, Title: "القوة الحقيقية", Pages: 20},
			},
		},
		{
			ID:          "demon-slayer",
			Title:       "قاتل الشياطين",
			TitleEn:     "Demon Slayer",
			Author:      "كويوهارو غوتوغي",
			Status:      domain.StatusCompleted,
			Genres:      []string{"أكشن", "خارق للطبيعة", "شونين"},
			Rating:      8.7,
			Description: "تانجيرو كاماو، فتى يصبح قاتل شياطين للانتقام لعائلته وعلاج أخته التي تحولت إلى شيطان.",
			Cover:       demonSlayerCover,
			Type:        domain.TypeManga,
			Chapters: []domain.Chapter{
				{Number: 205, Title: "الحياة تتألق", Pages: 23},
				{Number: 204, Title: "عد", Pages: 21},
				{Number: 203, Title: "عد إلى البيت", Pages: 19},
				{Number: 202, Title: "أقوى من أي شيطان", Pages: 20},
			},
		},
		{
			ID:          "blue-lock",
			Title:       "Blue Lock",
			TitleEn:     "Blue Lock",
			Author:      "Muneyuki Kaneshiro",
			Status:      domain.StatusOngoing,
			Genres:      []string{"رياضي", "شونين", "تشويق"},
			Rating:      8.5,
			Description: "بعد خروج اليابان من كأس العالم، تبدأ الحكومة مشروعاً ثورياً للعثور على أعظم مهاجم أناني: \"Blue Lock\".",
			Cover:       blueLockCover,
			Type:        domain.TypeManga,
			Chapters: []domain.Chapter{
				{Number: 270, Title: "إصرار إيساجي", Pages: 18},
				{Number: 269, Title: "المواجهة الكبرى", Pages: 19},
				{Number: 268, Title: "الهدف الحاسم", Pages: 17},
			},
		},
		{
			ID:          "naruto",
			Title:       "ناروتو",
			TitleEn:     "Naruto",
			Author:      "ماساشي كيشيموتو",
			Status:      domain.StatusCompleted,
			Genres:      []string{"أكشن", "مغامرة", "شونين"},
			Rating:      8.7,
			Description: "ناروتو أوزوماكي، نينجا شاب يسعى للحصول على الاعتراف من أقرانه ويحلم بأن يصبح هوكاجي، زعيم قريته.",
			Cover:       narutoCover,
			Type:        domain.TypeManga,
			Chapters: []domain.Chapter{
				{Number: 700, Title: "الجيل القادم", Pages: 45},
				{Number: 699, Title: "ناروتو وساسكي", Pages: 43},
				{Number: 698, Title: "ناروتو وساسكي 4", Pages: 41},
				{Number: 697, Title: "ناروتو وساسكي 3", Pages: 39},
			},
		},
		{
			ID:          "hunter-x-hunter",
			Title:       "القناص",
			TitleEn:     "Hunter x Hunter",
			Author:      "يوشيرو توغاشي",
			Status:      domain.StatusOngoing,
			Genres:      []string{"أكشن", "مغامرة", "شونين", "فانتازيا"},
			Rating:      9.0,
			Description: "غون فريكس، فتى صغير يسعى لأن يصبح صيادًا محترفًا مثل والده، ويخوض مغامرات مليئة بالتحديات مع أصدقائه كيلوا، كورابيكا، وليوريو.",
			Cover:       hunterCover,
			Type:        domain.TypeManga,
			Chapters: []domain.Chapter{
				{Number: 390, Title: "التوازن", Pages: 25},
				{Number: 389, Title: "غريزة", Pages: 23},
				{Number: 388, Title: "انتصار صغير", Pages: 21},
				{Number: 387, Title: "الموعد", Pages: 22},
			},
		},
		{
			ID:          "bleach",
			Title:       "بليتش",
			TitleEn:     "Bleach",
			Author:      "تيتي كوبو",
			Status:      domain.StatusCompleted,
			Genres:      []string{"أكشن", "شونين", "خارق للطبيعة"},
			Rating:      8.2,
			Description: "إيتشيغو كوروساكي، مراهق يكتسب قوى الشينيغامي ويحارب الأرواح الشريرة لحماية البشر وعالم الأرواح.",
			Cover:       bleachCover,
			Type:        domain.TypeManga,
			Chapters: []domain.Chapter{
				{Number: 686, Title: "موت بديل شينيغامي", Pages: 30},
				{Number: 685, Title: "الموت الحقيقي", Pages: 28},
				{Number: 684, Title: "العدو الأخير 2", Pages: 26},
				{Number: 683, Title: "العدو الأخير 1", Pages: 24},
			},
		},
		{
			ID:          "dbz",
			Title:       "دراغون بول Z",
			TitleEn:     "Dragon Ball Z",
			Author:      "أكيرا تورياما",
			Status:      domain.StatusCompleted,
			Genres:      []string{"أكشن", "مغامرة", "شونين", "فانتازيا"},
			Rating:      9.1,
			Description: "غوكو وأصدقاؤه يدافعون عن الأرض ضد أعداء أقوياء، من السايانز إلى فريزا، سيل، وماجين بو.",
			Cover:       dbzCover,
			Type:        domain.TypeManga,
			Chapters: []domain.Chapter{
				{Number: 325, Title: "وداعًا، دراغون وورلد", Pages: 45},
				{Number: 324, Title: "النهاية!", Pages: 43},
				{Number: 323, Title: "روح موحدة", Pages: 41},
				{Number: 322, Title: "انفجار كامي-ساما", Pages: 39},
			},
		},
		{
			ID:          "towerofgod",
			Title:       "برج الإله",
			TitleEn:     "The Tower of God",
			Author:      "SIU",
			Status:      domain.StatusOngoing,
			Genres:      []string{"أكشن", "فانتازيا", "مغامرة"},
			Rating:      9.1,
			Description: "يبدأ الطفل \"بام\" رحلته في البرج حيث كل طابق يمثل تحديًا جديدًا، بحثًا عن صديقته راشيل.",
			Cover:       towerCover,
			Type:        domain.TypeManhwa,
			Chapters: []domain.Chapter{
				{Number: 523, Title: "الباب الأول", Pages: 40},
				{Number: 522, Title: "اختبار الطابق", Pages: 38},
				{Number: 521, Title: "اللقاء", Pages: 42},
			},
		},
		{
			ID:          "sakamotodays",
			Title:       "أيام ساكاموتو",
			TitleEn:     "Sakamoto Days",
			Author:      "Yuto Suzuki",
			Status:      domain.StatusOngoing,
			Genres:      []string{"أكشن", "كوميديا", "شونين"},
			Rating:      8.7,
			Description: "ساكاموتو، القاتل الأسطوري السابق، كيعيش حياة هادئة كمالك لمتجر صغير. ولكن ماضيه مازال كيتبعه وكيجرّو لمواجهات خطيرة ملي كيتعرض أقرباؤه للخطر.",
			Cover:       sakamotoCover,
			Type:        domain.TypeManga,
			Chapters: []domain.Chapter{
				{Number: 171, Title: "المواجهة", Pages: 20},
				{Number: 170, Title: "خطة الاختطاف", Pages: 21},
				{Number: 169, Title: "عودة الماضي", Pages: 19},
			},
		},
	}
}

// MangaSaver is the subset of the store the seeder needs.
type MangaSaver interface {
	SaveManga(ctx context.Context, manga *domain.Manga) error
	CountManga(ctx context.Context) (int, error)
}

// Seed writes the built-in catalog into the store. Existing entries
// with the same IDs are replaced. Returns the number of entries saved.
func Seed(ctx context.Context, saver MangaSaver) (int, error) {
	entries := Default()
	for _, manga := range entries {
		if err := saver.SaveManga(ctx, manga); err != nil {
			return 0, fmt.Errorf("seed %s: %w", manga.ID, err)
		}
	}
	return len(entries), nil
}

// SeedIfEmpty seeds only when the store holds no catalog entries yet,
// so a restart never clobbers overlay edits.
func SeedIfEmpty(ctx context.Context, saver MangaSaver) (int, error) {
	count, err := saver.CountManga(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	return Seed(ctx, saver)
}
