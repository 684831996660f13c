package generator

import (
	"fmt"
	"strings"
)

// Limits caps how much of each source text is sent to the model, in
// characters.
type Limits struct {
	Notes   int
	Exam    int
	Lecture int
}

// DefaultLimits matches the context budget the prompts were tuned for.
var DefaultLimits = Limits{Notes: 15000, Exam: 20000, Lecture: 30000}

// Truncate returns the first n characters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

const quizRules = `[규칙]
- 정리본에 직접 나오는 질환명, 증상, 진단법, 치료법, 수치 등을 묻는 문제를 만드세요.
- "만약~했다면", "어떤 유형의 지식을~" 같은 메타 질문은 절대 만들지 마세요.
- 예시: "~의 1차 치료제는?", "~에서 나타나는 특징적 소견은?", "~의 진단 기준으로 옳은 것은?"`

// QuizPrompt builds the question generation prompt. With exam text the model
// copies the exam's question style; without it every question gets five
// options.
func QuizPrompt(notes, exam string, count int, lim Limits) string {
	var sb strings.Builder
	if exam != "" {
		fmt.Fprintf(&sb, "아래는 의대생이 공부한 정리본입니다. 이 학생이 정리본의 내용을 제대로 암기했는지 테스트하는 객관식 문제 %d개를 만드세요.\n\n", count)
		sb.WriteString(quizRules)
		sb.WriteString("\n- [족보]의 문제 형식(문체, 보기 개수)만 참고하세요.\n\n")
		sb.WriteString("[정리본]\n" + Truncate(notes, lim.Notes) + "\n\n")
		sb.WriteString("[족보 - 형식 참고용]\n" + Truncate(exam, lim.Exam) + "\n\n")
		fmt.Fprintf(&sb, "JSON 배열로 %d개 출력:\n", count)
		sb.WriteString(`[{"question": "질문", "options": ["보기1", "보기2", ...], "correct_index": 0, "explanation": "해설"}]`)
		return sb.String()
	}

	fmt.Fprintf(&sb, "아래는 의대생이 공부한 정리본입니다. 이 학생이 정리본의 내용을 제대로 암기했는지 테스트하는 5지선다형 객관식 문제 %d개를 만드세요.\n\n", count)
	sb.WriteString(quizRules + "\n\n")
	sb.WriteString("[정리본]\n" + Truncate(notes, lim.Notes) + "\n\n")
	fmt.Fprintf(&sb, "JSON 배열로 %d개 출력:\n", count)
	sb.WriteString(`[{"question": "질문", "options": ["보기1", "보기2", "보기3", "보기4", "보기5"], "correct_index": 0, "explanation": "해설"}]`)
	return sb.String()
}

const summaryTemplate = `당신은 의대 학습 정리 전문가입니다.
강의자료를 메인 주제(질환 등)별로 나누고, 표 형태로 정리하세요.

[구조 요구사항]
1. 기본적으로 '소주제' - '내용'의 2단 구성을 따릅니다.
2. 단, 소주제 내부에서 또다시 분류가 필요한 경우(예: 진단 내의 혈액검사/영상검사 등)에는 '세부 분류'를 추가하여 3단으로 구성하세요.

[서식 규칙]
1. 내용(value)은 긴 줄글로 쓰지 말고, 반드시 '1. ', '2. ' 번호를 붙여 개조식으로 작성하세요.
2. 각 번호 항목이 끝날 때마다 반드시 줄바꿈을 하세요.

[색상 태그 규칙]
- 족보 정답 선지 내용: <yellow>내용</yellow>
- 족보 오답 선지(강의 관련): <blue>내용</blue>
- 족보 오답 선지(강의 무관): <gray>내용</gray>

[입력 자료]
강의: %s
족보: %s

[출력 형식 - JSON 배열]
반드시 아래 구조를 지키세요. 'sub_key'는 하위 분류가 있을 때만 작성하고, 없으면 null 또는 빈 문자열로 두세요.
[
  {
    "main_topic": "메인 주제명 (예: 급성 A형 간염)",
    "sub_sections": [
      { "key": "개요", "sub_key": "", "value": "1. 정의: ...\n2. 역학: ..." },
      { "key": "진단", "sub_key": "혈액검사", "value": "1. IgM anti-HAV <yellow>양성</yellow>...\n2. LFT 상승..." },
      { "key": "진단", "sub_key": "영상검사", "value": "1. 초음파: 간비대 소견..." }
    ]
  },
  ...
]`

// SummaryPrompt builds the topic table prompt.
func SummaryPrompt(lecture, exam string, lim Limits) string {
	return fmt.Sprintf(summaryTemplate, Truncate(lecture, lim.Lecture), Truncate(exam, lim.Exam))
}
